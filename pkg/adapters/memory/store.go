// Package memory implements ports.EntryStore in memory, mainly for tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
)

// Store keeps the entry document in memory. Safe for concurrent use.
// Entries are round-tripped through JSON on Save/Load so callers observe
// the same isolation and type normalization as a real store.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Save serializes and keeps the full entry list.
func (s *Store) Save(ctx context.Context, entries []domain.ConfigEntry) error {
	if entries == nil {
		entries = []domain.ConfigEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Load returns the last saved entry list.
func (s *Store) Load(ctx context.Context) ([]domain.ConfigEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, domain.ErrStoreNotFound
	}

	var entries []domain.ConfigEntry
	if err := json.Unmarshal(s.data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}
	return entries, nil
}
