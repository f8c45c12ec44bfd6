// services/gallery_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"fotostudio-backend/models"
	"fotostudio-backend/storage"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GalleryService owns gallery records plus their files in the FileStore.
type GalleryService struct {
	DB    *gorm.DB
	Store storage.FileStore
}

func NewGalleryService(db *gorm.DB, store storage.FileStore) *GalleryService {
	return &GalleryService{DB: db, Store: store}
}

type GalleryMetadata struct {
	Categories []string `json:"categories"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
}

// List returns all images newest first plus the de-duplicated category set
// across all images in first-seen order. Recomputed on every call.
func (s *GalleryService) List() ([]models.GalleryImage, []string, error) {
	var images []models.GalleryImage
	if err := s.DB.Order("created_at DESC, id DESC").Find(&images).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list images: %w", err)
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, img := range images {
		var cats []string
		if len(img.Categories) > 0 {
			if err := json.Unmarshal(img.Categories, &cats); err != nil {
				log.Printf("warning: image %d has malformed categories: %v", img.ID, err)
				continue
			}
		}
		for _, cat := range cats {
			if !seen[cat] {
				seen[cat] = true
				categories = append(categories, cat)
			}
		}
	}
	return images, categories, nil
}

// Create stores the uploaded file and records it with its computed aspect
// ratio. Metadata must already be validated (positive width and height).
func (s *GalleryService) Create(file *multipart.FileHeader, meta GalleryMetadata) (models.GalleryImage, error) {
	if meta.Categories == nil {
		meta.Categories = []string{}
	}
	catsJSON, err := json.Marshal(meta.Categories)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("failed to encode categories: %w", err)
	}

	path, err := s.Store.Store(file)
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("failed to store file: %w", err)
	}

	image := models.GalleryImage{
		Filename:    file.Filename,
		Path:        path,
		URL:         s.Store.URL(path),
		Categories:  datatypes.JSON(catsJSON),
		AspectRatio: meta.Width / meta.Height,
	}

	if err := s.DB.Create(&image).Error; err != nil {
		// record failed after the file landed; best effort cleanup
		if delErr := s.Store.Delete(path); delErr != nil {
			log.Printf("warning: failed to remove orphaned file %s: %v", path, delErr)
		}
		return models.GalleryImage{}, fmt.Errorf("failed to create image record: %w", err)
	}
	return image, nil
}

// Delete removes the stored file and then the record. The two stores are not
// transactionally joined: both steps are attempted, each failure is logged,
// and the overall error reports if either failed. No rollback.
func (s *GalleryService) Delete(id uint) error {
	var image models.GalleryImage
	if err := s.DB.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to find image: %w", err)
	}

	fileErr := s.Store.Delete(image.Path)
	if fileErr != nil {
		log.Printf("error: failed to delete stored file %s: %v", image.Path, fileErr)
	}

	dbErr := s.DB.Delete(&image).Error
	if dbErr != nil {
		log.Printf("error: failed to delete image record %d: %v", image.ID, dbErr)
	}

	if fileErr != nil || dbErr != nil {
		return fmt.Errorf("image delete incomplete (file: %v, record: %v)", fileErr, dbErr)
	}
	return nil
}
