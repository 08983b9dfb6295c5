package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHCLFiles_SingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	files, err := HCLFiles(path)
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestHCLFiles_RejectsNonHCLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	_, err := HCLFiles(path)
	require.Error(t, err)
}

func TestHCLFiles_DirectoryIsRecursiveAndSorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.hcl", "a.hcl", "nested/c.hcl", "ignored.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}

	files, err := HCLFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, files)
}

func TestHCLFiles_EmptyDirectoryIsAnError(t *testing.T) {
	t.Parallel()

	_, err := HCLFiles(t.TempDir())
	require.Error(t, err)
}
