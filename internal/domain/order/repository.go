package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Order], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderItemRepository defines persistence operations for order items
type OrderItemRepository interface {
	Save(ctx context.Context, item *OrderItem) error
	FindByKey(ctx context.Context, orderID, productID uuid.UUID) (*OrderItem, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	CountByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
	Delete(ctx context.Context, orderID, productID uuid.UUID) error
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) error
}
