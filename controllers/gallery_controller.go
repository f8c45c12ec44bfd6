// controllers/gallery_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"fotostudio-backend/services"
	"fotostudio-backend/utils"

	"github.com/gin-gonic/gin"
)

// Upload constraints matching the public contract.
const maxImageSize = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

type GalleryController struct {
	GallerySvc *services.GalleryService
}

func NewGalleryController(svc *services.GalleryService) *GalleryController {
	return &GalleryController{GallerySvc: svc}
}

// Index lists every image newest first, each with a fully-qualified URL, plus
// the flattened unique category set for the filter UI.
func (gc *GalleryController) Index(c *gin.Context) {
	images, categories, err := gc.GallerySvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list gallery")
		return
	}

	origin := requestOrigin(c)
	for i := range images {
		if strings.HasPrefix(images[i].URL, "/") {
			images[i].URL = origin + images[i].URL
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"images":     images,
		"categories": categories,
	})
}

// Store accepts one image file plus a JSON metadata blob and creates the
// gallery record. Admin only.
func (gc *GalleryController) Store(c *gin.Context) {
	fieldErrors := map[string][]string{}

	file := uploadedImage(c)
	if file == nil {
		fieldErrors["images.0"] = append(fieldErrors["images.0"], "The images.0 field is required.")
	} else {
		if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
			fieldErrors["images.0"] = append(fieldErrors["images.0"], "The images.0 must be a file of type: jpeg, png, jpg, gif.")
		}
		if file.Size > maxImageSize {
			fieldErrors["images.0"] = append(fieldErrors["images.0"], "The images.0 may not be greater than 5120 kilobytes.")
		}
	}

	var meta services.GalleryMetadata
	rawMeta := c.PostForm("metadata")
	if strings.TrimSpace(rawMeta) == "" {
		fieldErrors["metadata"] = append(fieldErrors["metadata"], "The metadata field is required.")
	} else if err := json.Unmarshal([]byte(rawMeta), &meta); err != nil {
		fieldErrors["metadata"] = append(fieldErrors["metadata"], "The metadata must be a valid JSON string.")
	} else {
		// aspect_ratio is width/height; a zero or negative height would
		// poison the stored ratio, so reject it at the boundary
		if meta.Width <= 0 {
			fieldErrors["metadata"] = append(fieldErrors["metadata"], "The metadata.width must be greater than 0.")
		}
		if meta.Height <= 0 {
			fieldErrors["metadata"] = append(fieldErrors["metadata"], "The metadata.height must be greater than 0.")
		}
	}

	if len(fieldErrors) > 0 {
		utils.JSONValidationError(c, fieldErrors)
		return
	}

	image, err := gc.GallerySvc.Create(file, meta)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store image")
		return
	}
	c.JSON(http.StatusCreated, image)
}

// Destroy deletes the record and its stored file. Admin only.
func (gc *GalleryController) Destroy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "image not found")
		return
	}

	if err := gc.GallerySvc.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			utils.JSONError(c, http.StatusNotFound, "image not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gambar berhasil dihapus."})
}

// uploadedImage returns the upload whether the client named the part
// "images[0]" or sent an "images" array.
func uploadedImage(c *gin.Context) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	if files := form.File["images[0]"]; len(files) > 0 {
		return files[0]
	}
	if files := form.File["images"]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// requestOrigin rebuilds the serving origin from the incoming request.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
