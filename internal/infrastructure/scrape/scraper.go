package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"ContentAgent/internal/config"
	"ContentAgent/internal/extractor"
	"ContentAgent/internal/ports"
)

// maxPageBytes bounds how much of a page is read before extraction.
const maxPageBytes = 4 << 20

// PageScraper fetches an article page and extracts a short summary from it.
// Every failure degrades to "no summary".
type PageScraper struct {
	client    *http.Client
	userAgent string
	minChars  int
	extractor extractor.Extractor
	logger    *slog.Logger
}

var _ ports.Scraper = (*PageScraper)(nil)

// NewPageScraper wires an extraction strategy; client defaults to one with
// cfg.Timeout.
func NewPageScraper(client *http.Client, ext extractor.Extractor, cfg config.ScrapeConfig, log *slog.Logger) *PageScraper {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &PageScraper{
		client:    client,
		userAgent: cfg.UserAgent,
		minChars:  cfg.MinChars,
		extractor: ext,
		logger:    log,
	}
}

// Summary returns the extracted text, or false when the page could not be
// fetched or yielded fewer than minChars characters.
func (s *PageScraper) Summary(ctx context.Context, link string) (string, bool) {
	s.debug("scrape summary", "link", link)

	text, err := s.fetch(ctx, link)
	if err != nil {
		s.warn("could not scrape summary", "link", link, "error", err)
		return "", false
	}

	text = strings.TrimSpace(text)
	if chars := utf8.RuneCountInString(text); chars < s.minChars {
		s.warn("summary too short, likely a cookie banner or error page", "link", link, "chars", chars)
		return "", false
	}
	return text, true
}

func (s *PageScraper) fetch(ctx context.Context, link string) (string, error) {
	if s.extractor == nil {
		return "", fmt.Errorf("no extractor configured")
	}

	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	text, err := s.extractor.Extract(io.LimitReader(resp.Body, maxPageBytes), pageURL)
	if err != nil {
		return "", fmt.Errorf("%s extractor: %w", s.extractor.Name(), err)
	}
	return text, nil
}

func (s *PageScraper) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *PageScraper) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
