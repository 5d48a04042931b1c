package storage

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
)

const defaultStubBaseURL = "https://media.churchhub.local/uploads"

// StubStorage is the only backend shipped today. It mints a unique URL
// per upload without storing any bytes, and serves a fixed sample list.
type StubStorage struct {
	baseURL string
}

func NewStubStorage(baseURL string) *StubStorage {
	if baseURL == "" {
		baseURL = defaultStubBaseURL
	}
	return &StubStorage{baseURL: baseURL}
}

func (s *StubStorage) Upload(ctx context.Context, filename, contentType string, size int64) (MediaObject, error) {
	key := uuid.NewString() + "-" + path.Base(filename)
	return MediaObject{
		Name:        filename,
		URL:         s.baseURL + "/" + key,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now(),
	}, nil
}

func (s *StubStorage) List(ctx context.Context) ([]MediaObject, error) {
	uploaded := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	return []MediaObject{
		{Name: "sunday-service.jpg", URL: s.baseURL + "/sunday-service.jpg", ContentType: "image/jpeg", Size: 245760, UploadedAt: uploaded},
		{Name: "easter-banner.png", URL: s.baseURL + "/easter-banner.png", ContentType: "image/png", Size: 512000, UploadedAt: uploaded},
		{Name: "newsletter-march.pdf", URL: s.baseURL + "/newsletter-march.pdf", ContentType: "application/pdf", Size: 1048576, UploadedAt: uploaded},
	}, nil
}
