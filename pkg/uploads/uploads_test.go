package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveKeepsAllowedExtension(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	require.NoError(t, err)

	name, err := saver.Save("My Photo.JPG", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension is lowercased and kept")
	assert.NotContains(t, name, "My Photo", "original filename never leaks into storage")

	data, err := os.ReadFile(saver.Path(name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	require.NoError(t, err)

	name, err := saver.Save("payload.php", strings.NewReader("<?php"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".bin"), "unknown extensions are stored as .bin")

	name, err = saver.Save("noextension", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".bin"))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	require.NoError(t, err)

	a, err := saver.Save("one.png", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := saver.Save("one.png", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "same client filename must not collide")
}

func TestNewSaverCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewSaver(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
