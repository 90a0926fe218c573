package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storage "lavender_breeze/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) (*storage.LocalFileStorage, string) {
	t.Helper()

	tempDir := t.TempDir()

	fs, err := storage.NewLocalFileStorage(tempDir, "http://test.local/uploads/")
	require.NoError(t, err)

	return fs, tempDir
}

func TestLocalFileStorage_Upload(t *testing.T) {
	fs, tempDir := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful upload", func(t *testing.T) {
		err := fs.Upload(ctx, "rooms/1-abcd1234.png", strings.NewReader("first"), "image/png")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(tempDir, "rooms", "1-abcd1234.png"))
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("upload overwrites existing key", func(t *testing.T) {
		err := fs.Upload(ctx, "rooms/1-abcd1234.png", strings.NewReader("second"), "image/png")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(tempDir, "rooms", "1-abcd1234.png"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("key cannot escape base dir", func(t *testing.T) {
		err := fs.Upload(ctx, "../../escape.png", strings.NewReader("x"), "image/png")
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(tempDir, "escape.png"))
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := fs.Upload(cancelled, "rooms/2.png", strings.NewReader("x"), "image/png")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs, tempDir := setupFileStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.Upload(ctx, "posts/a.jpg", strings.NewReader("x"), "image/jpeg"))
	require.NoError(t, fs.Delete(ctx, "posts/a.jpg"))

	_, err := os.Stat(filepath.Join(tempDir, "posts", "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, fs.Delete(ctx, "posts/a.jpg"))
}

func TestLocalFileStorage_PublicURL(t *testing.T) {
	fs, _ := setupFileStorage(t)

	assert.Equal(t, "http://test.local/uploads/main_page/1-abc.png", fs.PublicURL("main_page/1-abc.png"))
}
