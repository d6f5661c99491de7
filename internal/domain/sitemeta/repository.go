package sitemeta

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
)

// SiteMetadataRepository defines persistence for the site configuration.
// Get returns the single record or ErrNotFound when none has been created.
type SiteMetadataRepository interface {
	Save(ctx context.Context, meta *SiteMetadata) error
	Get(ctx context.Context) (*SiteMetadata, error)
}

// FileUploadRepository defines persistence operations for upload records
type FileUploadRepository interface {
	Save(ctx context.Context, upload *FileUpload) error
	FindByID(ctx context.Context, id uuid.UUID) (*FileUpload, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[FileUpload], error)
	Delete(ctx context.Context, id uuid.UUID) error
}
