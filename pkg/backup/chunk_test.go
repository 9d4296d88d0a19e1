package backup

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRandomFile writes n random bytes and returns the content.
func writeRandomFile(t *testing.T, path string, n int) []byte {
	t.Helper()
	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return data
}

func TestSplitAndMerge_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "themes.tar.gz")
	original := writeRandomFile(t, archive, 2500)

	parts, err := Split(archive, 1000)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	// Original is gone, parts are named .part001..003
	_, err = os.Stat(archive)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, archive+".part001", parts[0])
	assert.Equal(t, archive+".part003", parts[2])

	assert.True(t, IsChunked(archive))

	require.NoError(t, Merge(archive))
	merged, err := os.ReadFile(archive)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(original, merged))

	// Once the merged file exists the archive no longer counts as chunked
	assert.False(t, IsChunked(archive))
}

func TestSplit_ExactMultiple(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "a.tar.gz")
	writeRandomFile(t, archive, 2000)

	parts, err := Split(archive, 1000)
	require.NoError(t, err)
	// No empty trailing part
	assert.Len(t, parts, 2)

	listed, err := ListParts(archive)
	require.NoError(t, err)
	assert.Equal(t, parts, listed)
}

func TestSplit_SmallerThanChunk(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "a.tar.gz")
	original := writeRandomFile(t, archive, 100)

	parts, err := Split(archive, 1000)
	require.NoError(t, err)
	require.Len(t, parts, 1)

	require.NoError(t, Merge(archive))
	merged, err := os.ReadFile(archive)
	require.NoError(t, err)
	assert.Equal(t, original, merged)
}

func TestSplit_InvalidChunkSize(t *testing.T) {
	_, err := Split("whatever.tar.gz", 0)
	assert.Error(t, err)
}

func TestListParts_IgnoresOtherArchives(t *testing.T) {
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.tar.gz")
	b := filepath.Join(tmp, "ab.tar.gz")
	writeRandomFile(t, a, 1500)
	writeRandomFile(t, b, 1500)

	_, err := Split(a, 1000)
	require.NoError(t, err)
	_, err = Split(b, 1000)
	require.NoError(t, err)

	// "a.tar.gz" parts must not pick up "ab.tar.gz" parts
	parts, err := ListParts(a)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.Contains(t, p, string(filepath.Separator)+"a.tar.gz.part")
	}
}

func TestMerge_NoParts(t *testing.T) {
	tmp := t.TempDir()
	err := Merge(filepath.Join(tmp, "missing.tar.gz"))
	assert.Error(t, err)
}

func TestRemoveParts(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "a.tar.gz")
	writeRandomFile(t, archive, 2500)

	_, err := Split(archive, 1000)
	require.NoError(t, err)

	require.NoError(t, RemoveParts(archive))
	parts, err := ListParts(archive)
	require.NoError(t, err)
	assert.Empty(t, parts)
}
