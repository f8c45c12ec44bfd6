package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"testing"

	"fotostudio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// fakeStore records calls instead of touching disk.
type fakeStore struct {
	stored    []string
	deleted   []string
	deleteErr error
}

func (f *fakeStore) Store(file *multipart.FileHeader) (string, error) {
	path := "gallery/" + file.Filename
	f.stored = append(f.stored, path)
	return path, nil
}

func (f *fakeStore) URL(path string) string { return "/uploads/" + path }

func (f *fakeStore) Delete(path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, path)
	return nil
}

func newFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
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

func TestGalleryCreate(t *testing.T) {
	store := &fakeStore{}
	svc := NewGalleryService(newTestDB(t), store)

	image, err := svc.Create(newFileHeader(t, "studio.jpg", []byte("jpegdata")), GalleryMetadata{
		Categories: []string{"wedding", "outdoor"},
		Width:      1600,
		Height:     900,
	})
	require.NoError(t, err)

	assert.Equal(t, "studio.jpg", image.Filename)
	assert.Equal(t, "gallery/studio.jpg", image.Path)
	assert.Equal(t, "/uploads/gallery/studio.jpg", image.URL)
	assert.InDelta(t, 1600.0/900.0, image.AspectRatio, 1e-9)
	assert.JSONEq(t, `["wedding","outdoor"]`, string(image.Categories))
	require.Len(t, store.stored, 1)
}

func TestGalleryCreate_NilCategoriesBecomesEmptySet(t *testing.T) {
	svc := NewGalleryService(newTestDB(t), &fakeStore{})

	image, err := svc.Create(newFileHeader(t, "a.png", []byte("png")), GalleryMetadata{
		Width:  100,
		Height: 100,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(image.Categories))
}

func TestGalleryList_NewestFirstWithUniqueCategories(t *testing.T) {
	store := &fakeStore{}
	svc := NewGalleryService(newTestDB(t), store)

	_, err := svc.Create(newFileHeader(t, "one.jpg", []byte("x")), GalleryMetadata{
		Categories: []string{"wedding", "studio"},
		Width:      4, Height: 3,
	})
	require.NoError(t, err)
	_, err = svc.Create(newFileHeader(t, "two.jpg", []byte("x")), GalleryMetadata{
		Categories: []string{"studio", "outdoor"},
		Width:      16, Height: 9,
	})
	require.NoError(t, err)

	images, categories, err := svc.List()
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "two.jpg", images[0].Filename)
	assert.Equal(t, "one.jpg", images[1].Filename)

	// flattened, de-duplicated, first-seen order over the newest-first list
	assert.Equal(t, []string{"studio", "outdoor", "wedding"}, categories)
}

func TestGalleryDelete_RemovesFileAndRecord(t *testing.T) {
	store := &fakeStore{}
	db := newTestDB(t)
	svc := NewGalleryService(db, store)

	image, err := svc.Create(newFileHeader(t, "gone.jpg", []byte("x")), GalleryMetadata{
		Width: 1, Height: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(image.ID))
	assert.Equal(t, []string{"gallery/gone.jpg"}, store.deleted)

	images, _, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestGalleryDelete_NotFound(t *testing.T) {
	svc := NewGalleryService(newTestDB(t), &fakeStore{})
	assert.ErrorIs(t, svc.Delete(12345), ErrImageNotFound)
}

func TestGalleryDelete_FileFailureStillRemovesRecord(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("store unreachable")}
	db := newTestDB(t)
	svc := NewGalleryService(db, store)

	image := models.GalleryImage{
		Filename:    "stuck.jpg",
		Path:        "gallery/stuck.jpg",
		URL:         "/uploads/gallery/stuck.jpg",
		Categories:  datatypes.JSON([]byte(`[]`)),
		AspectRatio: 1,
	}
	require.NoError(t, db.Create(&image).Error)

	// both halves are attempted; the record goes even when the file stays,
	// and the overall result reports the failure
	err := svc.Delete(image.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.GalleryImage{}).Count(&count).Error)
	assert.Zero(t, count)
}
