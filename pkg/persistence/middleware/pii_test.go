package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
)

func TestPIIMasksMatchingKeys(t *testing.T) {
	inner := memory.NewStore()
	store := NewPIIMiddleware([]string{"(?i)token", "(?i)password"})(inner)
	ctx := context.Background()

	entries := []domain.ConfigEntry{{
		ID:     "flow-1",
		Domain: "hub",
		Title:  "Main Hub",
		Data: map[string]any{
			"host":  "hub.local",
			"token": "s3cret",
			"nested": map[string]any{
				"Password": "hunter2",
				"note":     "visible",
			},
		},
	}}
	require.NoError(t, store.Save(ctx, entries))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	data := loaded[0].Data.(map[string]any)
	assert.Equal(t, "hub.local", data["host"])
	assert.Equal(t, "***", data["token"])

	nested := data["nested"].(map[string]any)
	assert.Equal(t, "***", nested["Password"])
	assert.Equal(t, "visible", nested["note"])
}

func TestPIILeavesInMemoryEntriesIntact(t *testing.T) {
	inner := memory.NewStore()
	store := NewPIIMiddleware([]string{"token"})(inner)

	data := map[string]any{"token": "s3cret"}
	entries := []domain.ConfigEntry{{ID: "flow-1", Domain: "hub", Data: data}}
	require.NoError(t, store.Save(context.Background(), entries))

	// The caller's copy is untouched; only the persisted document is masked.
	assert.Equal(t, "s3cret", data["token"])
}
