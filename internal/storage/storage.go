// Package storage holds the media-upload placeholder. Real file storage
// is out of scope: uploads are acknowledged with a synthetic URL and
// the content is discarded.
package storage

import (
	"context"
	"time"
)

// MediaObject describes an uploaded (or sample) media record.
type MediaObject struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// MediaStorage defines common media operations across backends.
type MediaStorage interface {
	Upload(ctx context.Context, filename, contentType string, size int64) (MediaObject, error)
	List(ctx context.Context) ([]MediaObject, error)
}

// Storage wraps a MediaStorage backend with a stable API.
type Storage struct {
	backend MediaStorage
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend MediaStorage) *Storage {
	return &Storage{backend: backend}
}

// Upload records an upload and returns its descriptor.
func (s *Storage) Upload(ctx context.Context, filename, contentType string, size int64) (MediaObject, error) {
	return s.backend.Upload(ctx, filename, contentType, size)
}

// List returns the known media records.
func (s *Storage) List(ctx context.Context) ([]MediaObject, error) {
	return s.backend.List(ctx)
}
