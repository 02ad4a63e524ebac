package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// EntryStore persists the committed entry list as a single ordered document.
// Each Save replaces the previous document atomically; a partial write must
// never corrupt previously stored data.
type EntryStore interface {
	// Load reads the full entry list in the order it was written.
	// Returns domain.ErrStoreNotFound when no store exists yet; a
	// malformed store is an ordinary error.
	Load(ctx context.Context) ([]domain.ConfigEntry, error)

	// Save writes the full entry list, replacing any prior document.
	Save(ctx context.Context, entries []domain.ConfigEntry) error
}
