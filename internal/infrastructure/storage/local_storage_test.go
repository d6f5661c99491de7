package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalObjectStorage_Put(t *testing.T) {
	t.Run("stores object and returns public URL", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewLocalObjectStorage(dir, "http://localhost:8080/media/")
		require.NoError(t, err)

		url, err := store.Put(context.Background(), "uploads/2026/08/29/banner-abc123.png", strings.NewReader("payload"), "image/png", 7)

		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/media/uploads/2026/08/29/banner-abc123.png", url)

		data, err := os.ReadFile(filepath.Join(dir, "uploads", "2026", "08", "29", "banner-abc123.png"))
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("rejects traversal keys", func(t *testing.T) {
		store, err := NewLocalObjectStorage(t.TempDir(), "http://localhost:8080/media")
		require.NoError(t, err)

		_, err = store.Put(context.Background(), "../escape.txt", strings.NewReader("x"), "text/plain", 1)

		assert.Error(t, err)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		store, err := NewLocalObjectStorage(t.TempDir(), "http://localhost:8080/media")
		require.NoError(t, err)

		_, err = store.Put(context.Background(), "", strings.NewReader("x"), "text/plain", 1)

		assert.Error(t, err)
	})
}

func TestLocalObjectStorage_Delete(t *testing.T) {
	t.Run("removes stored object", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewLocalObjectStorage(dir, "http://localhost:8080/media")
		require.NoError(t, err)

		_, err = store.Put(context.Background(), "uploads/file.txt", strings.NewReader("x"), "text/plain", 1)
		require.NoError(t, err)

		err = store.Delete(context.Background(), "uploads/file.txt")

		assert.NoError(t, err)
		_, statErr := os.Stat(filepath.Join(dir, "uploads", "file.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("tolerates missing object", func(t *testing.T) {
		store, err := NewLocalObjectStorage(t.TempDir(), "http://localhost:8080/media")
		require.NoError(t, err)

		assert.NoError(t, store.Delete(context.Background(), "uploads/missing.txt"))
	})
}
