package middleware

import (
	"bytes"
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func sampleEntries() []domain.ConfigEntry {
	return []domain.ConfigEntry{
		{
			ID:     "flow-1",
			Domain: "hub",
			Title:  "Main Hub",
			Source: domain.SourceUser,
			Data:   map[string]any{"host": "hub.local", "token": "s3cret"},
		},
	}
}

func TestEncryptionRoundTrip(t *testing.T) {
	key := testKey(t)
	inner := memory.NewStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: key})(inner)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleEntries()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Main Hub", loaded[0].Title)
	data := loaded[0].Data.(map[string]any)
	assert.Equal(t, "s3cret", data["token"])
}

func TestEncryptionHidesPlaintext(t *testing.T) {
	key := testKey(t)
	inner := memory.NewStore()
	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: key})(inner)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleEntries()))

	// The wrapped store sees only the opaque envelope.
	stored, err := inner.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "__encrypted__", stored[0].ID)
	assert.Empty(t, stored[0].Title)

	ciphertext := stored[0].Data.(string)
	assert.NotContains(t, ciphertext, "s3cret")
	assert.NotContains(t, ciphertext, "hub.local")
}

func TestEncryptionKeyRotation(t *testing.T) {
	oldKey := testKey(t)
	newKey := testKey(t)
	require.False(t, bytes.Equal(oldKey, newKey))

	inner := memory.NewStore()
	ctx := context.Background()

	oldStore := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: oldKey})(inner)
	require.NoError(t, oldStore.Save(ctx, sampleEntries()))

	// New active key with the old one as fallback still reads old data.
	rotated := NewEncryptionMiddleware(EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(inner)

	loaded, err := rotated.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Main Hub", loaded[0].Title)
}

func TestEncryptionWrongKeyFails(t *testing.T) {
	inner := memory.NewStore()
	ctx := context.Background()

	writer := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(t)})(inner)
	require.NoError(t, writer.Save(ctx, sampleEntries()))

	reader := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(t)})(inner)
	_, err := reader.Load(ctx)
	assert.Error(t, err)
}

func TestEncryptionRejectsPlainDocument(t *testing.T) {
	inner := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, inner.Save(ctx, sampleEntries()))

	store := NewEncryptionMiddleware(EncryptionConfig{ActiveKey: testKey(t)})(inner)
	_, err := store.Load(ctx)
	assert.ErrorContains(t, err, "envelope")
}

func TestEncryptionRequires32ByteKey(t *testing.T) {
	assert.Panics(t, func() {
		NewEncryptionMiddleware(EncryptionConfig{ActiveKey: []byte("short")})
	})
}
