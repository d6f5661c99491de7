package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
)

// ShippingAddressRepository defines persistence operations for addresses
type ShippingAddressRepository interface {
	Save(ctx context.Context, address *ShippingAddress) error
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingAddress, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[ShippingAddress], error)
	Delete(ctx context.Context, id uuid.UUID) error
}
