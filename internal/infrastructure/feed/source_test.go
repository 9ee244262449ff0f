package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example</title>
  <link>https://example.com</link>
  <description>fixture</description>
  <item><title>Fifth</title><link>https://example.com/5</link></item>
  <item><title>Fourth</title><link>https://example.com/4</link></item>
  <item><title>Third</title><guid>urn:example:3</guid></item>
  <item><title>Second</title><link>https://example.com/2</link></item>
</channel>
</rss>`

func newFeedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSourceRecentTakesNewestPrefix(t *testing.T) {
	t.Parallel()

	server := newFeedServer(t, rssFixture)
	src := NewSource(server.Client(), nil)

	articles, err := src.Recent(context.Background(), server.URL, 3)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	if articles[0].Link != "https://example.com/5" || articles[0].Title != "Fifth" {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}
	if articles[2].Link != "urn:example:3" {
		t.Fatalf("guid should back a missing link, got %q", articles[2].Link)
	}
}

func TestSourceRecentEmptyFeed(t *testing.T) {
	t.Parallel()

	server := newFeedServer(t, `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`)
	src := NewSource(server.Client(), nil)

	articles, err := src.Recent(context.Background(), server.URL, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}
}

func TestSourceRecentInvalidFeed(t *testing.T) {
	t.Parallel()

	server := newFeedServer(t, `not a feed`)
	src := NewSource(server.Client(), nil)

	if _, err := src.Recent(context.Background(), server.URL, 2); err == nil {
		t.Fatalf("expected parse error")
	}
}
