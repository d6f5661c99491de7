package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// GormTagRepository implements catalog.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM tag repository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// Save persists a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	result := r.db.WithContext(ctx).Save(tag)
	if result.Error != nil {
		return fmt.Errorf("failed to save tag: %w", result.Error)
	}
	return nil
}

// FindBySlug finds a tag by its slug
func (r *GormTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Tag, error) {
	var tag catalog.Tag
	result := r.db.WithContext(ctx).First(&tag, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag: %w", result.Error)
	}
	return &tag, nil
}

// FindAll returns a paginated list of tags
func (r *GormTagRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Tag], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Tag{})
	if filter.Search != "" {
		query = query.Where("slug ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}

	pageQuery := query
	if filter.OrderBy == "" || filter.OrderBy == "created_at" {
		// tags have no interesting ordering beyond their label
		pageQuery = pageQuery.Order("slug asc")
		if filter.PageSize > 0 {
			offset := (filter.Page - 1) * filter.PageSize
			if offset < 0 {
				offset = 0
			}
			pageQuery = pageQuery.Offset(offset).Limit(filter.PageSize)
		}
	} else {
		pageQuery = applyPagination(pageQuery, filter, TagSortFields)
	}

	var tags []catalog.Tag
	result := pageQuery.Find(&tags)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find tags: %w", result.Error)
	}

	page := shared.NewPaginated(tags, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a tag by its slug
func (r *GormTagRepository) Delete(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Tag{}, "slug = ?", slug)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GORM category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Save persists a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	result := r.db.WithContext(ctx).Save(category)
	if result.Error != nil {
		return fmt.Errorf("failed to save category: %w", result.Error)
	}
	return nil
}

// FindBySlug finds a category by its slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var category catalog.Category
	result := r.db.WithContext(ctx).First(&category, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", result.Error)
	}
	return &category, nil
}

// FindAll returns a paginated list of categories
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Category], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Category{})
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("slug ILIKE ? OR description ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []catalog.Category
	result := applyPagination(query, filter, CategorySortFields).Find(&categories)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find categories: %w", result.Error)
	}

	page := shared.NewPaginated(categories, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindChildren returns the categories whose parent is the given slug
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentSlug string) ([]catalog.Category, error) {
	var children []catalog.Category
	result := r.db.WithContext(ctx).Where("parent_slug = ?", parentSlug).Order("slug asc").Find(&children)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find child categories: %w", result.Error)
	}
	return children, nil
}

// Delete removes a category by its slug
func (r *GormCategoryRepository) Delete(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "slug = ?", slug)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
