// Package testutils holds helpers shared across test packages.
package testutils

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/file"
)

// SetupTestStore creates a file store rooted in a fresh temp directory.
// It returns the document path and the store.
func SetupTestStore(t *testing.T, opts ...file.Option) (string, *file.Store) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "entries.json")
	return path, file.New(path, opts...)
}
