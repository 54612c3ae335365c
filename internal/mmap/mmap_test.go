package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.kpk")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpenReadClose(t *testing.T) {
	content := []byte("packed words on disk")
	path := writeTemp(t, content)

	m, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, content, m.Data)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Data)

	// Close is safe to repeat.
	require.NoError(t, m.Close())
}

func TestOpenEmptyFile(t *testing.T) {
	path := writeTemp(t, nil)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Nil(t, m.Data)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.kpk"))
	assert.Error(t, err)
}

func TestCloseNil(t *testing.T) {
	var m *File
	assert.NoError(t, m.Close())
}
