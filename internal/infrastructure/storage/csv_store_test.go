package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *CSVStore {
	t.Helper()
	store := NewCSVStore(filepath.Join(t.TempDir(), "seen_articles.csv"))
	clock := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.Local)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

func TestCSVStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	seen, err := store.HasBeenSeen(ctx, "https://example.com/a")
	if err != nil {
		t.Fatalf("HasBeenSeen returned error: %v", err)
	}
	if seen {
		t.Fatalf("missing store should report unseen")
	}

	records, err := store.Records(ctx)
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestCSVStoreMarkAsSeenWritesHeaderOnce(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.MarkAsSeen(ctx, "https://example.com/a", "First, with comma"); err != nil {
		t.Fatalf("MarkAsSeen returned error: %v", err)
	}
	if err := store.MarkAsSeen(ctx, "https://example.com/b", "Second"); err != nil {
		t.Fatalf("MarkAsSeen returned error: %v", err)
	}

	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), raw)
	}
	if lines[0] != "timestamp,title,link" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != `2025-03-01 09:31:00,"First, with comma",https://example.com/a` {
		t.Fatalf("unexpected first row: %q", lines[1])
	}

	for _, link := range []string{"https://example.com/a", "https://example.com/b"} {
		seen, err := store.HasBeenSeen(ctx, link)
		if err != nil {
			t.Fatalf("HasBeenSeen returned error: %v", err)
		}
		if !seen {
			t.Fatalf("%s should be seen", link)
		}
	}
	if seen, _ := store.HasBeenSeen(ctx, "https://example.com/c"); seen {
		t.Fatalf("unknown link reported as seen")
	}
}

func TestCSVStoreEmptyFileGetsHeader(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), nil, 0o644); err != nil {
		t.Fatalf("seed empty file: %v", err)
	}

	if err := store.MarkAsSeen(context.Background(), "https://example.com/a", "A"); err != nil {
		t.Fatalf("MarkAsSeen returned error: %v", err)
	}

	raw, _ := os.ReadFile(store.Path())
	if !strings.HasPrefix(string(raw), "timestamp,title,link\n") {
		t.Fatalf("header missing:\n%s", raw)
	}
}

func TestCSVStoreRecords(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	_ = store.MarkAsSeen(ctx, "https://example.com/a", "A")
	_ = store.MarkAsSeen(ctx, "https://example.com/b", "B")

	records, err := store.Records(ctx)
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Link != "https://example.com/a" || records[1].Title != "B" {
		t.Fatalf("unexpected records: %+v", records)
	}
	want := time.Date(2025, time.March, 1, 9, 31, 0, 0, time.Local)
	if !records[0].Timestamp.Equal(want) {
		t.Fatalf("unexpected timestamp: %v", records[0].Timestamp)
	}
}

func TestCSVStoreWriteFailurePropagates(t *testing.T) {
	t.Parallel()

	store := NewCSVStore(filepath.Join(t.TempDir(), "missing-dir", "seen.csv"))
	if err := store.MarkAsSeen(context.Background(), "https://example.com/a", "A"); err == nil {
		t.Fatalf("expected error when parent directory is missing")
	}
}

func TestBrandVoiceFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "brand_voice.txt")
	if err := os.WriteFile(path, []byte("Be bold.\nUse emoji.\n"), 0o644); err != nil {
		t.Fatalf("write voice: %v", err)
	}

	voice, err := NewBrandVoiceFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(voice) != "Be bold.\nUse emoji.\n" {
		t.Fatalf("voice should be verbatim, got %q", voice)
	}

	if _, err := NewBrandVoiceFile(path + ".missing").Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
