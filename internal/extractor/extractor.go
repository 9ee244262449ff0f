package extractor

import (
	"fmt"
	"io"
	"net/url"
)

// Extractor turns a fetched HTML page into plain text.
type Extractor interface {
	Name() string
	Extract(page io.Reader, pageURL *url.URL) (string, error)
}

// Registry keeps a mapping from extractor names to their implementations.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]Extractor{}}
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(ext Extractor) {
	if r.extractors == nil {
		r.extractors = map[string]Extractor{}
	}
	r.extractors[ext.Name()] = ext
}

// Resolve returns an extractor by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Extractor, error) {
	if ext, ok := r.extractors[name]; ok {
		return ext, nil
	}
	return nil, fmt.Errorf("extractor %s is not registered", name)
}
