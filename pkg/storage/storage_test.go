package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newTestStore(t *testing.T, maxSize int64) *Store {
	t.Helper()
	store, err := New(Config{
		BaseDir:       t.TempDir(),
		BaseURL:       "/uploads",
		MaxUploadSize: maxSize,
	})
	require.NoError(t, err)
	return store
}

func TestSaveImagePNG(t *testing.T) {
	store := newTestStore(t, 0)

	url, err := store.SaveImage("posts", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/posts/"), "got %s", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "got %s", url)

	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(store.BaseDir(), "posts", name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.SaveImage("posts", strings.NewReader("definitely not an image"))
	assert.Error(t, err)
}

func TestSaveImageRejectsEmpty(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.SaveImage("posts", bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestSaveImageEnforcesSizeLimit(t *testing.T) {
	store := newTestStore(t, 16)

	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 32)...)
	_, err := store.SaveImage("posts", bytes.NewReader(payload))
	assert.Error(t, err)
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{BaseURL: "/uploads"})
	assert.Error(t, err)
}
