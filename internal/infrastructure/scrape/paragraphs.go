package scrape

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ContentAgent/internal/extractor"
)

// ParagraphExtractor joins the text of the first few <p> elements.
type ParagraphExtractor struct {
	max int
}

var _ extractor.Extractor = (*ParagraphExtractor)(nil)

// NewParagraphExtractor keeps at most max paragraphs; max defaults to 5.
func NewParagraphExtractor(max int) *ParagraphExtractor {
	if max <= 0 {
		max = 5
	}
	return &ParagraphExtractor{max: max}
}

// Name identifies the strategy inside the registry.
func (p *ParagraphExtractor) Name() string {
	return "paragraphs"
}

// Extract returns the space-joined paragraph text in document order.
func (p *ParagraphExtractor) Extract(page io.Reader, _ *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	parts := make([]string, 0, p.max)
	doc.Find("p").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		parts = append(parts, sel.Text())
		return len(parts) < p.max
	})

	return strings.Join(parts, " "), nil
}
