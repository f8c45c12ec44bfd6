package storage

import "mime/multipart"

// FileStore is the durable file store the gallery writes into. Store returns
// the store-internal relative path, URL the relative serving path for it.
// Delete removes the stored file; record deletion proceeds independently.
type FileStore interface {
	Store(file *multipart.FileHeader) (string, error)
	URL(path string) string
	Delete(path string) error
}
