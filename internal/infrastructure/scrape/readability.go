package scrape

import (
	"fmt"
	"io"
	"net/url"

	readability "github.com/go-shiori/go-readability"

	"ContentAgent/internal/extractor"
)

// ReadabilityExtractor uses Mozilla's readability heuristics to find the main
// article body.
type ReadabilityExtractor struct{}

var _ extractor.Extractor = ReadabilityExtractor{}

// Name identifies the strategy inside the registry.
func (ReadabilityExtractor) Name() string {
	return "readability"
}

// Extract returns the plain-text content of the detected article.
func (ReadabilityExtractor) Extract(page io.Reader, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(page, pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return article.TextContent, nil
}
