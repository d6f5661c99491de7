package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// GormTaxRepository implements catalog.TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GORM tax repository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// Save persists a tax code
func (r *GormTaxRepository) Save(ctx context.Context, tax *catalog.Tax) error {
	result := r.db.WithContext(ctx).Save(tax)
	if result.Error != nil {
		return fmt.Errorf("failed to save tax: %w", result.Error)
	}
	return nil
}

// FindByID finds a tax code by its ID
func (r *GormTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tax, error) {
	var tax catalog.Tax
	result := r.db.WithContext(ctx).First(&tax, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax: %w", result.Error)
	}
	return &tax, nil
}

// FindByNameAndRate finds a tax code by the (name, rate) pair
func (r *GormTaxRepository) FindByNameAndRate(ctx context.Context, name string, rate int) (*catalog.Tax, error) {
	var tax catalog.Tax
	result := r.db.WithContext(ctx).First(&tax, "name = ? AND rate = ?", name, rate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax: %w", result.Error)
	}
	return &tax, nil
}

// FindAll returns a paginated list of tax codes
func (r *GormTaxRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Tax], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Tax{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count taxes: %w", err)
	}

	var taxes []catalog.Tax
	result := applyPagination(query, filter, TaxSortFields).Find(&taxes)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find taxes: %w", result.Error)
	}

	page := shared.NewPaginated(taxes, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindByIDs loads the given tax codes in one query, keyed by ID.
// Missing IDs are simply absent from the result.
func (r *GormTaxRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Tax, error) {
	taxes := make(map[uuid.UUID]*catalog.Tax, len(ids))
	if len(ids) == 0 {
		return taxes, nil
	}

	var rows []catalog.Tax
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find taxes: %w", result.Error)
	}

	for i := range rows {
		taxes[rows[i].ID] = &rows[i]
	}
	return taxes, nil
}

// Delete removes a tax code by its ID
func (r *GormTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Tax{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete tax: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
