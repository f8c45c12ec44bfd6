package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps gallery files in an object-store bucket instead of local
// disk. Selected when MINIO_HOST is set.
type MinioStore struct {
	Client   *minio.Client
	Bucket   string
	Endpoint string
	UseSSL   bool
}

func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Printf("Created bucket %s", bucket)
	}

	return &MinioStore{Client: client, Bucket: bucket, Endpoint: endpoint, UseSSL: useSSL}, nil
}

func (s *MinioStore) Store(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload failed: %w", err)
	}
	defer src.Close()

	name, err := randomizedName(file.Filename)
	if err != nil {
		return "", err
	}
	objectName := "gallery/" + name

	_, err = s.Client.PutObject(context.Background(), s.Bucket, objectName, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *MinioStore) URL(path string) string {
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.Endpoint, s.Bucket, strings.TrimPrefix(path, "/"))
}

func (s *MinioStore) Delete(path string) error {
	return s.Client.RemoveObject(context.Background(), s.Bucket, path, minio.RemoveObjectOptions{})
}
