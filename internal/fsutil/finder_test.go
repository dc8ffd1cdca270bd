package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# test"), 0o600))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.hcl")
	b := filepath.Join(root, "nested", "b.hcl")
	writeFile(t, a)
	writeFile(t, b)
	writeFile(t, filepath.Join(root, "nested", "notes.txt"))

	files, err := FindFilesByExtension([]string{root, a}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files, "directory walk plus an explicit duplicate yields each file once")

	files, err = FindFilesByExtension([]string{filepath.Join(root, "nested", "notes.txt")}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFilesByExtension_MissingPath(t *testing.T) {
	_, err := FindFilesByExtension([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFindFilesByExtension_PanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesByExtension([]string{t.TempDir()}, "")
	})
}
