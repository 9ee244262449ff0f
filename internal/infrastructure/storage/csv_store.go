package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

var csvHeader = []string{"timestamp", "title", "link"}

// CSVStore keeps processed articles in an append-only CSV file. It assumes a
// single writer; concurrent runs can race between HasBeenSeen and MarkAsSeen.
type CSVStore struct {
	path string
	now  func() time.Time
}

var (
	_ ports.SeenStore = (*CSVStore)(nil)
	_ ports.SeenLog   = (*CSVStore)(nil)
)

// NewCSVStore points the store at path; the file is created on first write.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path, now: time.Now}
}

// Path returns the backing file location.
func (s *CSVStore) Path() string {
	return s.path
}

// HasBeenSeen scans every row for link. A missing file is an empty store.
func (s *CSVStore) HasBeenSeen(_ context.Context, link string) (bool, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open seen log: %w", err)
	}
	defer f.Close()

	reader := newReader(f)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read seen log: %w", err)
		}
		if len(row) > 2 && row[2] == link {
			return true, nil
		}
	}
}

// MarkAsSeen appends one row, writing the header first if the file is new or
// empty. Existing rows are never rewritten.
func (s *CSVStore) MarkAsSeen(_ context.Context, link, title string) error {
	needsHeader := true
	if info, err := os.Stat(s.path); err == nil {
		needsHeader = info.Size() == 0
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat seen log: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open seen log for append: %w", err)
	}

	writer := csv.NewWriter(f)
	if needsHeader {
		if err := writer.Write(csvHeader); err != nil {
			_ = f.Close()
			return fmt.Errorf("write seen log header: %w", err)
		}
	}
	if err := writer.Write([]string{s.now().Format(domain.TimestampLayout), title, link}); err != nil {
		_ = f.Close()
		return fmt.Errorf("write seen log row: %w", err)
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("append seen log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close seen log: %w", err)
	}
	return nil
}

// Records returns all rows in file order, without the header. A missing file
// yields no records.
func (s *CSVStore) Records(_ context.Context) ([]domain.SeenRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open seen log: %w", err)
	}
	defer f.Close()

	rows, err := newReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read seen log: %w", err)
	}
	if len(rows) > 0 && isHeader(rows[0]) {
		rows = rows[1:]
	}

	records := make([]domain.SeenRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		record := domain.SeenRecord{Title: row[1], Link: row[2]}
		if ts, err := time.ParseInLocation(domain.TimestampLayout, row[0], time.Local); err == nil {
			record.Timestamp = ts
		}
		records = append(records, record)
	}
	return records, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func isHeader(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i := range row {
		if row[i] != csvHeader[i] {
			return false
		}
	}
	return true
}
