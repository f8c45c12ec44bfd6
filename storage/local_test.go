package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerFor(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("images[0]", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images[0]"][0]
}

func TestLocalStore_RoundTrip(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStore(base)
	require.NoError(t, err)

	path, err := store.Store(headerFor(t, "photo.jpg", []byte("jpegdata")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "gallery/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)

	assert.Equal(t, "/uploads/"+path, store.URL(path))

	require.NoError(t, store.Delete(path))
	_, err = os.Stat(filepath.Join(base, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_StoredNamesNeverCollide(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Store(headerFor(t, "same.png", []byte("a")))
	require.NoError(t, err)
	second, err := store.Store(headerFor(t, "same.png", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStore_DeleteMissingFileIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, store.Delete("gallery/never-existed.jpg"))
}
