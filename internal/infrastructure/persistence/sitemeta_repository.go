package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/sitemeta"
)

// GormSiteMetadataRepository implements sitemeta.SiteMetadataRepository using GORM
type GormSiteMetadataRepository struct {
	db *gorm.DB
}

// NewGormSiteMetadataRepository creates a new GORM site metadata repository
func NewGormSiteMetadataRepository(db *gorm.DB) *GormSiteMetadataRepository {
	return &GormSiteMetadataRepository{db: db}
}

// Save persists the site configuration record
func (r *GormSiteMetadataRepository) Save(ctx context.Context, meta *sitemeta.SiteMetadata) error {
	result := r.db.WithContext(ctx).Save(meta)
	if result.Error != nil {
		return fmt.Errorf("failed to save site metadata: %w", result.Error)
	}
	return nil
}

// Get returns the single site configuration record. The table holds at
// most one row; the oldest wins if that invariant is ever violated.
func (r *GormSiteMetadataRepository) Get(ctx context.Context) (*sitemeta.SiteMetadata, error) {
	var meta sitemeta.SiteMetadata
	result := r.db.WithContext(ctx).Order("created_at asc").First(&meta)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load site metadata: %w", result.Error)
	}
	return &meta, nil
}

// GormFileUploadRepository implements sitemeta.FileUploadRepository using GORM
type GormFileUploadRepository struct {
	db *gorm.DB
}

// NewGormFileUploadRepository creates a new GORM file upload repository
func NewGormFileUploadRepository(db *gorm.DB) *GormFileUploadRepository {
	return &GormFileUploadRepository{db: db}
}

// Save persists an upload record
func (r *GormFileUploadRepository) Save(ctx context.Context, upload *sitemeta.FileUpload) error {
	result := r.db.WithContext(ctx).Save(upload)
	if result.Error != nil {
		return fmt.Errorf("failed to save file upload: %w", result.Error)
	}
	return nil
}

// FindByID finds an upload record by its ID
func (r *GormFileUploadRepository) FindByID(ctx context.Context, id uuid.UUID) (*sitemeta.FileUpload, error) {
	var upload sitemeta.FileUpload
	result := r.db.WithContext(ctx).First(&upload, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find file upload: %w", result.Error)
	}
	return &upload, nil
}

// FindAll returns a paginated list of upload records
func (r *GormFileUploadRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[sitemeta.FileUpload], error) {
	query := r.db.WithContext(ctx).Model(&sitemeta.FileUpload{})
	if filter.Search != "" {
		query = query.Where("key ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count file uploads: %w", err)
	}

	var uploads []sitemeta.FileUpload
	result := applyPagination(query, filter, FileUploadSortFields).Find(&uploads)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find file uploads: %w", result.Error)
	}

	page := shared.NewPaginated(uploads, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes an upload record by its ID
func (r *GormFileUploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&sitemeta.FileUpload{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete file upload: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
