package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/internal/testutils"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/domain"
)

func sampleEntries() []domain.ConfigEntry {
	return []domain.ConfigEntry{
		{
			ID:      "flow-1",
			Version: 1,
			Domain:  "hub",
			Title:   "Main Hub",
			Source:  domain.SourceUser,
			Data: map[string]any{
				"host": "hub.local",
				"nested": map[string]any{
					"port": float64(8123),
				},
			},
		},
		{
			ID:     "flow-2",
			Domain: "cast",
			Title:  "Living Room",
			Source: domain.SourceDiscovery,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	_, store := testutils.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleEntries()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Write order survives the round trip.
	assert.Equal(t, "flow-1", loaded[0].ID)
	assert.Equal(t, "flow-2", loaded[1].ID)
	assert.Equal(t, 1, loaded[0].Version)
	assert.Equal(t, domain.SourceDiscovery, loaded[1].Source)

	data := loaded[0].Data.(map[string]any)
	nested := data["nested"].(map[string]any)
	assert.Equal(t, float64(8123), nested["port"])
}

func TestLoadMissingFile(t *testing.T) {
	_, store := testutils.SetupTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestLoadMalformedFile(t *testing.T) {
	path, store := testutils.SetupTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStoreNotFound)
	assert.Contains(t, err.Error(), "failed to parse entry store")
}

func TestSaveNilWritesEmptyList(t *testing.T) {
	_, store := testutils.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, nil))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestYAMLFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.yaml")
	store := file.New(path, file.WithFormat(file.FormatYAML))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleEntries()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "domain: hub")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Main Hub", loaded[0].Title)
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "entries.json")
	store := file.New(path)

	require.NoError(t, store.Save(context.Background(), sampleEntries()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	path, store := testutils.SetupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleEntries()))
	require.NoError(t, store.Save(ctx, nil))

	files, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".espalier", "entries.json"), store.Path())
}
