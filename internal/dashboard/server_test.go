package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ContentAgent/internal/domain"
)

type stubLog struct {
	records []domain.SeenRecord
	err     error
}

func (s stubLog) Records(context.Context) ([]domain.SeenRecord, error) {
	return s.records, s.err
}

func newTestServer(t *testing.T, log stubLog) http.Handler {
	t.Helper()
	srv, err := NewServer(log, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func sampleRecords() []domain.SeenRecord {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	return []domain.SeenRecord{
		{Timestamp: base, Title: "Older story", Link: "https://example.com/old"},
		{Timestamp: base.Add(time.Hour), Title: "Newer story", Link: "https://example.com/new"},
	}
}

func TestLandingPage(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, stubLog{}), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/dashboard"`) {
		t.Fatalf("landing page should link to the dashboard")
	}
}

func TestDashboardNewestFirst(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, stubLog{records: sampleRecords()}), "/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	newer := strings.Index(body, "Newer story")
	older := strings.Index(body, "Older story")
	if newer < 0 || older < 0 || newer > older {
		t.Fatalf("expected newest first, body:\n%s", body)
	}
	if !strings.Contains(body, "2024-05-01 10:00:00") {
		t.Fatalf("expected formatted timestamp in body")
	}
}

func TestDashboardEmptyWhenLogUnreadable(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, stubLog{err: errors.New("permission denied")}), "/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No articles processed yet.") {
		t.Fatalf("expected empty table message")
	}
}

func TestAPILog(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, stubLog{records: sampleRecords()}), "/api/log")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Count   int                 `json:"count"`
		Records []domain.SeenRecord `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Count != 2 || payload.Records[0].Title != "Newer story" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestAPILogError(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, stubLog{err: errors.New("boom")}), "/api/log")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, stubLog{}), "/api/health")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDashboardRejectsWrites(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, stubLog{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard", nil))
	if rec.Code == http.StatusOK {
		t.Fatalf("POST must not be served")
	}
}
