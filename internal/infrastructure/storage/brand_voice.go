package storage

import (
	"context"
	"fmt"
	"os"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// BrandVoiceFile reads the guidelines from a text file on every Load.
type BrandVoiceFile struct {
	path string
}

var _ ports.BrandVoiceSource = (*BrandVoiceFile)(nil)

// NewBrandVoiceFile points at the guidelines file.
func NewBrandVoiceFile(path string) *BrandVoiceFile {
	return &BrandVoiceFile{path: path}
}

// Load returns the file content verbatim.
func (b *BrandVoiceFile) Load(_ context.Context) (domain.BrandVoice, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return "", fmt.Errorf("read brand voice %s: %w", b.path, err)
	}
	return domain.BrandVoice(raw), nil
}
