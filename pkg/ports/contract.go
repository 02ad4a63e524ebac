package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
)

// RunEntryStoreContract asserts the behavior every EntryStore must share:
// not-found on a fresh store, ordered round trips and whole-document
// replacement. Adapter test suites call it against their implementation.
func RunEntryStoreContract(t *testing.T, store EntryStore) {
	t.Helper()
	ctx := context.Background()

	// 1. A fresh store reports not-found, never an empty list.
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("Load on fresh store: want ErrStoreNotFound, got %v", err)
	}

	// 2. Round trip preserves order and fields.
	entries := []domain.ConfigEntry{
		{ID: "flow-1", Version: 2, Domain: "hub", Title: "Main Hub", Source: domain.SourceUser,
			Data: map[string]any{"host": "hub.local"}},
		{ID: "flow-2", Domain: "cast", Title: "Living Room", Source: domain.SourceDiscovery},
	}
	if err := store.Save(ctx, entries); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load: want 2 entries, got %d", len(loaded))
	}
	if loaded[0].ID != "flow-1" || loaded[1].ID != "flow-2" {
		t.Fatalf("Load: order not preserved: %q, %q", loaded[0].ID, loaded[1].ID)
	}
	if loaded[0].Version != 2 || loaded[0].Title != "Main Hub" || loaded[1].Source != domain.SourceDiscovery {
		t.Fatalf("Load: fields not preserved: %+v", loaded)
	}

	// 3. Save replaces the whole document.
	if err := store.Save(ctx, entries[:1]); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}
	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after replacement: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("Load after replacement: want 1 entry, got %d", len(loaded))
	}

	// 4. Saving nil persists an empty document, distinct from not-found.
	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("Save nil: %v", err)
	}
	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after nil save: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("Load after nil save: want empty, got %d entries", len(loaded))
	}
}
