package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/internal/metrics"
	"github.com/oksasatya/go-videotube/pkg/helpers"
)

// GCSMediaStore stores media objects in one public-read bucket.
type GCSMediaStore struct {
	client *storage.Client
	bucket string
}

func NewGCSMediaStore(client *storage.Client, bucket string) *GCSMediaStore {
	return &GCSMediaStore{client: client, bucket: bucket}
}

// ObjectName builds folder/<uuid><ext>, keeping the lower-cased extension of the original name.
func ObjectName(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

func (s *GCSMediaStore) Upload(ctx context.Context, file application.LocalFile, folder string) (application.Asset, error) {
	start := time.Now()
	f, err := os.Open(file.Path)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(folder, "error").Inc()
		return application.Asset{}, fmt.Errorf("open staged file: %w", err)
	}
	defer func() { _ = f.Close() }()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := helpers.UploadObject(ctx, s.client, s.bucket, ObjectName(folder, file.Filename), contentType, f)
	metrics.UploadDuration.WithLabelValues(folder).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(folder, "error").Inc()
		return application.Asset{}, err
	}
	metrics.UploadsTotal.WithLabelValues(folder, "success").Inc()
	return application.Asset{URL: url}, nil
}

func (s *GCSMediaStore) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	name, err := helpers.ObjectFromURL(s.bucket, url)
	if err != nil {
		return err
	}
	return helpers.DeleteObject(ctx, s.client, s.bucket, name)
}

var _ application.MediaStore = (*GCSMediaStore)(nil)
