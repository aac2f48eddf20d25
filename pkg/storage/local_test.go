package storage

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueFilenameNeverCollides(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		name, err := UniqueFilename("notes.pdf")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, "-notes.pdf"))
		_, dup := seen[name]
		assert.False(t, dup)
		seen[name] = struct{}{}
	}
}

func TestUniqueFilenameReplacesSpaces(t *testing.T) {
	name, err := UniqueFilename("unit 3 notes.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "-unit-3-notes.pdf"))
	assert.NotContains(t, name, " ")
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", FileExtension("Notes.PDF"))
	assert.Equal(t, "docx", FileExtension("a/b/report.docx"))
	assert.Equal(t, "", FileExtension("noext"))
}

func TestSaveStreamAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	rel := filepath.Join("materials", "abc-notes.txt")
	stored, err := store.SaveStream(rel, bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, rel, stored)

	file, err := store.Open(rel)
	require.NoError(t, err)
	defer file.Close()
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(rel))
	require.NoError(t, store.Delete(rel))
}
