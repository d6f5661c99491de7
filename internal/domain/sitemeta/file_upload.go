package sitemeta

import (
	"github.com/ngkart/backend/internal/domain/shared"
)

// FileUpload records an object placed in blob storage, typically a
// product or customization image.
type FileUpload struct {
	shared.BaseEntity
	Key         string `gorm:"type:varchar(300);uniqueIndex;not null"`
	URL         string `gorm:"type:varchar(500);not null"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FileUpload) TableName() string {
	return "file_uploads"
}

// NewFileUpload records a stored object
func NewFileUpload(key, url, contentType string, size int64) (*FileUpload, error) {
	if key == "" {
		return nil, shared.NewDomainError("INVALID_KEY", "Object key cannot be empty")
	}
	if url == "" {
		return nil, shared.NewDomainError("INVALID_URL", "Object URL cannot be empty")
	}
	if size < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Object size cannot be negative")
	}

	return &FileUpload{
		BaseEntity:  shared.NewBaseEntity(),
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        size,
	}, nil
}
