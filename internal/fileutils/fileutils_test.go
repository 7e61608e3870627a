package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.dat")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
	assert.True(t, FileExists(path))

	// Directories are not files.
	assert.False(t, FileExists(dir))
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "missing")))

	path := filepath.Join(dir, "data.dat")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0644))
	assert.False(t, DirectoryExists(path))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDirectoryExists(dir))
	assert.True(t, DirectoryExists(dir))

	// Idempotent.
	require.NoError(t, EnsureDirectoryExists(dir))
}

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.dat")
	require.NoError(t, WriteFile(path, []byte("hello\n"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	// A second write replaces the contents.
	require.NoError(t, WriteFile(path, []byte("replaced\n"), 0644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced\n", string(data))
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledger.dat")

	require.NoError(t, AppendLine(path, "first"))
	require.NoError(t, AppendLine(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}
