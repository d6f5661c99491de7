package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/customer"
	"github.com/ngkart/backend/internal/domain/shared"
)

// GormShippingAddressRepository implements customer.ShippingAddressRepository using GORM
type GormShippingAddressRepository struct {
	db *gorm.DB
}

// NewGormShippingAddressRepository creates a new GORM shipping address repository
func NewGormShippingAddressRepository(db *gorm.DB) *GormShippingAddressRepository {
	return &GormShippingAddressRepository{db: db}
}

// Save persists a shipping address
func (r *GormShippingAddressRepository) Save(ctx context.Context, address *customer.ShippingAddress) error {
	result := r.db.WithContext(ctx).Save(address)
	if result.Error != nil {
		return fmt.Errorf("failed to save shipping address: %w", result.Error)
	}
	return nil
}

// FindByID finds a shipping address by its ID
func (r *GormShippingAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.ShippingAddress, error) {
	var address customer.ShippingAddress
	result := r.db.WithContext(ctx).First(&address, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shipping address: %w", result.Error)
	}
	return &address, nil
}

// FindByCustomer returns the paginated addresses owned by a customer
func (r *GormShippingAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[customer.ShippingAddress], error) {
	query := r.db.WithContext(ctx).Model(&customer.ShippingAddress{}).Where("customer_id = ?", customerID)
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ? OR pin_code ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count shipping addresses: %w", err)
	}

	var addresses []customer.ShippingAddress
	result := applyPagination(query, filter, AddressSortFields).Find(&addresses)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find shipping addresses: %w", result.Error)
	}

	page := shared.NewPaginated(addresses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a shipping address by its ID
func (r *GormShippingAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&customer.ShippingAddress{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete shipping address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
