package sitemeta

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/sitemeta"
)

// ObjectStorage abstracts the blob store behind uploads. The S3 client
// and the local development stub both satisfy it.
type ObjectStorage interface {
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadResponse represents an upload record in API responses
type UploadResponse struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUploadResponse converts a domain upload record to its response form
func ToUploadResponse(u *sitemeta.FileUpload) UploadResponse {
	return UploadResponse{
		ID:          u.ID,
		Key:         u.Key,
		URL:         u.URL,
		ContentType: u.ContentType,
		Size:        u.Size,
		CreatedAt:   u.CreatedAt,
	}
}

// UploadService stores uploaded files in object storage and records them
type UploadService struct {
	uploadRepo sitemeta.FileUploadRepository
	storage    ObjectStorage
}

// NewUploadService creates a new UploadService
func NewUploadService(uploadRepo sitemeta.FileUploadRepository, storage ObjectStorage) *UploadService {
	return &UploadService{uploadRepo: uploadRepo, storage: storage}
}

// Upload stores the file under a collision-free key and persists the record
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*UploadResponse, error) {
	if filename == "" {
		return nil, shared.NewDomainError("INVALID_FILE", "Filename cannot be empty")
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "File is empty")
	}

	key := objectKey(filename)
	url, err := s.storage.Put(ctx, key, body, contentType, size)
	if err != nil {
		return nil, err
	}

	upload, err := sitemeta.NewFileUpload(key, url, contentType, size)
	if err != nil {
		return nil, err
	}
	if err := s.uploadRepo.Save(ctx, upload); err != nil {
		// storage succeeded but the record did not: drop the orphan object
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	response := ToUploadResponse(upload)
	return &response, nil
}

// GetByID retrieves an upload record
func (s *UploadService) GetByID(ctx context.Context, id uuid.UUID) (*UploadResponse, error) {
	upload, err := s.uploadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToUploadResponse(upload)
	return &response, nil
}

// List retrieves upload records with pagination
func (s *UploadService) List(ctx context.Context, filter shared.Filter) ([]UploadResponse, int64, error) {
	result, err := s.uploadRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UploadResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToUploadResponse(&result.Items[i])
	}
	return responses, result.Total, nil
}

// Delete removes the stored object and its record
func (s *UploadService) Delete(ctx context.Context, id uuid.UUID) error {
	upload, err := s.uploadRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, upload.Key); err != nil {
		return err
	}
	return s.uploadRepo.Delete(ctx, id)
}

// objectKey builds a date-partitioned key with a random suffix so
// repeated uploads of the same filename never collide.
func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	return fmt.Sprintf("uploads/%s/%s-%s%s",
		time.Now().UTC().Format("2006/01/02"), base, uuid.NewString()[:8], ext)
}
