package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

// PhotoStore persists report photo attachments and returns the URL under
// which each photo is served.
type PhotoStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// objectName assigns a collision-free name, keeping the original extension.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

// GCSPhotoStore uploads photos to a Google Cloud Storage bucket.
type GCSPhotoStore struct {
	Client *gcs.Client
	Bucket string
}

func NewGCSPhotoStore(client *gcs.Client, bucket string) *GCSPhotoStore {
	return &GCSPhotoStore{Client: client, Bucket: bucket}
}

func (s *GCSPhotoStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	objectPath := filepath.ToSlash(filepath.Join("reports", objectName(filename)))
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
}

// LocalPhotoStore writes photos to a directory on disk and returns the API
// path that serves them. Used when no GCS bucket is configured.
type LocalPhotoStore struct {
	Dir string
}

func NewLocalPhotoStore(dir string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalPhotoStore{Dir: dir}, nil
}

func (s *LocalPhotoStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := objectName(filename)
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return "/api/uploads/" + name, nil
}

var (
	_ PhotoStore = (*GCSPhotoStore)(nil)
	_ PhotoStore = (*LocalPhotoStore)(nil)
)
