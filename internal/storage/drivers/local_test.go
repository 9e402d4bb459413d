package drivers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
}

func TestLocalStorage_ListObjectKeys(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"b.txt", "a/z.txt", "a-c.txt", "a/b/c.txt"} {
		writeFile(t, root, rel)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty-dir"), 0o755))

	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	keys, err := store.ListObjectKeys(context.Background())
	require.NoError(t, err)
	// bytewise order: '-' (0x2d) sorts before '/' (0x2f)
	assert.Equal(t, []string{"a-c.txt", "a/b/c.txt", "a/z.txt", "b.txt"}, keys)
}

func TestLocalStorage_Empty(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	keys, err := store.ListObjectKeys(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestNewLocalStorage_Errors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.txt")

	_, err := NewLocalStorage(filepath.Join(root, "missing"))
	assert.ErrorContains(t, err, "not found")

	_, err = NewLocalStorage(filepath.Join(root, "file.txt"))
	assert.ErrorContains(t, err, "not a directory")
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt")

	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.ListObjectKeys(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
