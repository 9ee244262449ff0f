package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// Source reads RSS, Atom and JSON feeds through gofeed.
type Source struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ ports.FeedSource = (*Source)(nil)

// NewSource wires an HTTP client; a nil client gets a 30s timeout.
func NewSource(client *http.Client, log *slog.Logger) *Source {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "ContentAgent/1.0"
	return &Source{parser: parser, logger: log}
}

// Recent returns at most limit entries in feed order, which publishers keep
// newest first. Entries without any usable identifier are dropped.
func (s *Source) Recent(ctx context.Context, feedURL string, limit int) ([]domain.Article, error) {
	parsed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	items := parsed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		link := strings.TrimSpace(item.Link)
		if link == "" {
			link = strings.TrimSpace(item.GUID)
		}
		if link == "" {
			s.debug("skip entry without link", "feed", feedURL, "title", item.Title)
			continue
		}
		articles = append(articles, domain.Article{
			Title: strings.TrimSpace(item.Title),
			Link:  link,
		})
	}

	s.debug("feed fetched", "feed", feedURL, "entries", len(parsed.Items), "batch", len(articles))
	return articles, nil
}

func (s *Source) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
