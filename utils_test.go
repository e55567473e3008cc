package lcdbdata

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTripGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "test.txt.gz")

	w, err := CreateFile(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello\nworld\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenFile(path)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "hello\nworld\n", string(data))
}

func TestFileRoundTripPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")

	w, err := CreateFile(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "plain")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenFile(path)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "plain", string(data))
}

func TestReadWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, WriteLines(path, []string{"read1", "read2"}))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"read1", "read2"}, lines)

	// An empty list still produces a readable, empty file.
	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, WriteLines(empty, nil))
	lines, err = ReadLines(empty)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
