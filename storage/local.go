package storage

import (
	"crypto/rand"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore writes gallery files under baseDir and serves them through the
// router's static /uploads mount.
type LocalStore struct {
	BaseDir string // e.g. "./uploads"
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "gallery"), 0755); err != nil {
		return nil, fmt.Errorf("mkdir failed: %w", err)
	}
	return &LocalStore{BaseDir: baseDir}, nil
}

func (s *LocalStore) Store(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload failed: %w", err)
	}
	defer src.Close()

	name, err := randomizedName(file.Filename)
	if err != nil {
		return "", err
	}
	relPath := filepath.ToSlash(filepath.Join("gallery", name))

	dst, err := os.Create(filepath.Join(s.BaseDir, relPath))
	if err != nil {
		return "", fmt.Errorf("create file failed: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file failed: %w", err)
	}
	return relPath, nil
}

func (s *LocalStore) URL(path string) string {
	return "/uploads/" + strings.TrimPrefix(filepath.ToSlash(path), "/")
}

func (s *LocalStore) Delete(path string) error {
	full := filepath.Join(s.BaseDir, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// randomizedName keeps the original extension but replaces the name with
// timestamp + random hex so uploads never collide on disk.
func randomizedName(original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d_%x%s", time.Now().UnixNano(), b, ext), nil
}
