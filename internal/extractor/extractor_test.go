package extractor

import (
	"io"
	"net/url"
	"testing"
)

type stubExtractor struct{ name string }

func (s stubExtractor) Name() string { return s.name }

func (s stubExtractor) Extract(io.Reader, *url.URL) (string, error) { return s.name, nil }

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubExtractor{name: "paragraphs"})

	ext, err := reg.Resolve("paragraphs")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if ext.Name() != "paragraphs" {
		t.Fatalf("unexpected extractor: %s", ext.Name())
	}

	if _, err := reg.Resolve("missing"); err == nil {
		t.Fatalf("expected error for unregistered extractor")
	}
}

func TestRegistryZeroValue(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(stubExtractor{name: "readability"})
	if _, err := reg.Resolve("readability"); err != nil {
		t.Fatalf("zero-value registry should accept registrations: %v", err)
	}
}
