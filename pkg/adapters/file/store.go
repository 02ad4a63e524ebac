// Package file implements ports.EntryStore on the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/espalier/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of the entry document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Store persists the entry list as a single document on disk. Saves are
// atomic: the document is written to a temp file and renamed over the old
// one, so a failed write never corrupts previously stored entries.
type Store struct {
	path   string
	format Format
}

// Option configures the Store.
type Option func(*Store)

// WithFormat selects the document encoding (default JSON).
func WithFormat(format Format) Option {
	return func(s *Store) {
		s.format = format
	}
}

// New creates a file store writing to the given path.
// If path is empty, it defaults to ".espalier/entries.json".
func New(path string, opts ...Option) *Store {
	if path == "" {
		path = filepath.Join(".espalier", "entries.json")
	}
	s := &Store{path: path, format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the entry document, preserving write order.
func (s *Store) Load(ctx context.Context) ([]domain.ConfigEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to read entry store: %w", err)
	}

	var entries []domain.ConfigEntry
	switch s.format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry store: %w", err)
	}

	return entries, nil
}

// Save replaces the entry document with the given list.
func (s *Store) Save(ctx context.Context, entries []domain.ConfigEntry) error {
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}

	var (
		data []byte
		err  error
	)
	switch s.format {
	case FormatYAML:
		data, err = yaml.Marshal(entries)
	default:
		data, err = json.MarshalIndent(entries, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure store directory: %w", err)
	}

	// Write-then-rename keeps the previous document intact on failure.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write entries: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace entry store: %w", err)
	}

	return nil
}
