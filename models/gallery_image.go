package models

import (
	"time"

	"gorm.io/datatypes"
)

type GalleryImage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Filename is the original upload name, Path the store-internal relative
	// path. URL is the relative serving path; listings prepend the origin.
	Filename string `gorm:"size:255" json:"filename"`
	Path     string `gorm:"size:255" json:"path"`
	URL      string `gorm:"size:255" json:"url"`

	// Categories is a JSON array of free-text tags in insertion order.
	Categories datatypes.JSON `gorm:"column:categories" json:"categories"`

	// AspectRatio is width/height as supplied at upload time. Always > 0.
	AspectRatio float64 `gorm:"column:aspect_ratio" json:"aspect_ratio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GalleryImage) TableName() string { return "galleries" }
