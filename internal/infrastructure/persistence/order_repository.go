package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/order"
	"github.com/ngkart/backend/internal/domain/shared"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists an order header. Items are managed through the item
// repository, so association writes are skipped here.
func (r *GormOrderRepository) Save(ctx context.Context, ord *order.Order) error {
	result := r.db.WithContext(ctx).Omit("Items").Save(ord)
	if result.Error != nil {
		return fmt.Errorf("failed to save order: %w", result.Error)
	}
	return nil
}

// SaveWithLock persists an order header only if its version has not
// moved underneath us. The version increment happens here, once per
// persisted mutation, regardless of how many fields changed.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, ord *order.Order) error {
	loadedVersion := ord.Version
	ord.Version++
	result := r.db.WithContext(ctx).
		Model(ord).
		Where("id = ? AND version = ?", ord.ID, loadedVersion).
		Updates(map[string]interface{}{
			"status":        ord.Status,
			"shipping_pct":  ord.ShippingPct,
			"flat_shipping": ord.FlatShipping,
			"address_id":    ord.AddressID,
			"total":         ord.Total,
			"tracking_id":   ord.TrackingID,
			"version":       ord.Version,
			"updated_at":    ord.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var ord order.Order
	result := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", result.Error)
	}
	return &ord, nil
}

// FindByCustomer returns the paginated orders owned by a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[order.Order], error) {
	query := r.db.WithContext(ctx).Model(&order.Order{}).Where("customer_id = ?", customerID)
	return r.findPage(query, filter)
}

// FindAll returns a paginated list of all orders
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[order.Order], error) {
	query := r.db.WithContext(ctx).Model(&order.Order{})
	return r.findPage(query, filter)
}

// Delete removes an order by its ID. Items cascade at the schema level.
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.Order{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormOrderRepository) findPage(query *gorm.DB, filter shared.Filter) (*shared.Paginated[order.Order], error) {
	if filter.Search != "" {
		query = query.Where("tracking_id ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "address_id":
			query = query.Where("address_id = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []order.Order
	result := applyPagination(query, filter, OrderSortFields).Preload("Items").Find(&orders)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find orders: %w", result.Error)
	}

	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GormOrderItemRepository implements order.OrderItemRepository using GORM
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GORM order item repository
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// Save persists an order item
func (r *GormOrderItemRepository) Save(ctx context.Context, item *order.OrderItem) error {
	result := r.db.WithContext(ctx).Save(item)
	if result.Error != nil {
		return fmt.Errorf("failed to save order item: %w", result.Error)
	}
	return nil
}

// FindByKey finds an item by its (order, product) composite key
func (r *GormOrderItemRepository) FindByKey(ctx context.Context, orderID, productID uuid.UUID) (*order.OrderItem, error) {
	var item order.OrderItem
	result := r.db.WithContext(ctx).First(&item, "order_id = ? AND product_id = ?", orderID, productID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order item: %w", result.Error)
	}
	return &item, nil
}

// FindByOrder returns all items of an order in insertion order
func (r *GormOrderItemRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.OrderItem, error) {
	var items []order.OrderItem
	result := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at asc").Find(&items)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find order items: %w", result.Error)
	}
	return items, nil
}

// CountByOrder returns the number of item lines on an order
func (r *GormOrderItemRepository) CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&order.OrderItem{}).Where("order_id = ?", orderID).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count order items: %w", result.Error)
	}
	return count, nil
}

// Delete removes a single item line
func (r *GormOrderItemRepository) Delete(ctx context.Context, orderID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.OrderItem{}, "order_id = ? AND product_id = ?", orderID, productID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByOrder removes every item line of an order
func (r *GormOrderItemRepository) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.OrderItem{}, "order_id = ?", orderID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order items: %w", result.Error)
	}
	return nil
}
