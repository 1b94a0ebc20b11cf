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

func TestLocalStore_PutWritesFileAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/uploads/")

	url, err := store.Put(context.Background(), "products/owner-1/p-1.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/owner-1/p-1.png", url)

	data, err := os.ReadFile(filepath.Join(root, "products", "owner-1", "p-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestLocalStore_PutStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "/uploads")

	url, err := store.Put(context.Background(), "../../escape.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)
	_, err = os.Stat(filepath.Join(root, "escape.png"))
	assert.NoError(t, err)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)
}
