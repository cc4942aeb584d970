package imp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReadMat(t *testing.T) {
	dir := t.TempDir()

	for name, m := range map[string]*Mat{
		"gray.png": filled(3, 4, 12),
		"rgb.png":  filled(3, 4, 12, 34, 56),
		"rgba.png": filled(3, 4, 12, 34, 56, 78),
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveMat(path, m))

		got, err := ReadMat(path, AnyColor)
		require.NoError(t, err, name)
		assert.Equal(t, m.Channels, got.Channels, name)
		assert.Equal(t, m.Bytes(), got.Bytes(), name)
	}
}

func TestReadMatColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.png")
	require.NoError(t, SaveMat(path, filled(2, 2, 99)))

	m, err := ReadMat(path, Color)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Channels)
	assert.Equal(t, filled(2, 2, 99, 99, 99).Bytes(), m.Bytes())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.png"))
	assert.True(t, os.IsNotExist(err))

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0644))
	_, err = ReadMat(junk, AnyColor)
	assert.Error(t, err)

	assert.Error(t, SaveMat(filepath.Join(dir, "out.unknown"), filled(1, 1, 0)))
	assert.ErrorIs(t, SaveMat(filepath.Join(dir, "out.png"), NewFloatMat(1, 1, 1)), ErrInvalidInput)
}
