package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return fmt.Errorf("failed to save product: %w", result.Error)
	}
	return nil
}

// SaveWithLock persists a product only if its version has not moved
// underneath us. The version column is matched against the value the
// aggregate was loaded with; the increment happens here, once per
// persisted mutation, regardless of how many fields changed.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	loadedVersion := product.Version
	product.Version++
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, loadedVersion).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"slug":           product.Slug,
			"description":    product.Description,
			"image_url":      product.ImageURL,
			"customizable":   product.Customizable,
			"price":          product.Price,
			"featured_price": product.FeaturedPrice,
			"launch_date":    product.LaunchDate,
			"inventory":      product.Inventory,
			"unit":           product.Unit,
			"discount_pct":   product.DiscountPct,
			"shipping_pct":   product.ShippingPct,
			"flat_shipping":  product.FlatShipping,
			"tax_id":         product.TaxID,
			"category_slug":  product.CategorySlug,
			"tags":           product.Tags,
			"version":        product.Version,
			"updated_at":     product.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}
	return &product, nil
}

// FindByIDForUpdate loads a product under a row lock so that concurrent
// orders serialize on the inventory check. Only meaningful inside a
// transaction scope.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}
	return &product, nil
}

// FindBySlug finds a product by its slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	result := r.db.WithContext(ctx).First(&product, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}
	return &product, nil
}

// FindAll returns a paginated list of products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
}

// FindByCategory returns a paginated list of products in the given category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categorySlug string, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("category_slug = ?", categorySlug)
	return r.findPage(ctx, query, filter)
}

// FindAllNames returns the id-to-name mapping for every product
func (r *GormProductRepository) FindAllNames(ctx context.Context) (map[uuid.UUID]string, error) {
	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	result := r.db.WithContext(ctx).Model(&catalog.Product{}).Select("id", "name").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list product names: %w", result.Error)
	}

	names := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// Delete removes a product by its ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) findPage(ctx context.Context, query *gorm.DB, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	query = r.applyFilterConditions(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []catalog.Product
	result := applyPagination(query, filter, ProductSortFields).Find(&products)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find products: %w", result.Error)
	}

	page := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (r *GormProductRepository) applyFilterConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR tags ILIKE ?", search, search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "tag":
			query = query.Where("tags ILIKE ?", "%"+fmt.Sprint(value)+"%")
		case "min_price":
			query = query.Where("price >= ?", value)
		case "max_price":
			query = query.Where("price <= ?", value)
		case "customizable":
			query = query.Where("customizable = ?", value)
		case "in_stock":
			query = query.Where("inventory > 0")
		}
	}

	return query
}

// applyPagination applies ordering and pagination common to all
// repositories. The sort field is validated against the entity's
// whitelist before it reaches the ORDER BY clause.
func applyPagination(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
