package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/shared/valueobject"
)

// Status labels an order's position in fulfilment. Membership is
// validated, but transitions are not: callers may move an order between
// any two statuses, and any ordering policy lives outside the domain.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusPending    Status = "PENDING"
	StatusCancelled  Status = "CANCELLED"
	StatusShipped    Status = "SHIPPED"
)

// IsValid checks whether the status is one of the known labels.
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusConfirmed, StatusPending, StatusCancelled, StatusShipped:
		return true
	}
	return false
}

// Order aggregates a customer's purchase: the line items plus the
// shipping and total figures derived from them.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status       Status            `gorm:"type:varchar(20);not null;default:'PROCESSING'"`
	ShippingPct  int               `gorm:"not null;default:0"`
	FlatShipping bool              `gorm:"not null;default:false"`
	AddressID    *uuid.UUID        `gorm:"type:uuid;index"`
	Total        valueobject.Money `gorm:"type:decimal(12,2);not null"`
	TrackingID   string            `gorm:"type:varchar(100)"`
	Items        []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line within an order, keyed by (order, product).
type OrderItem struct {
	OrderID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ProductID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Quantity           int               `gorm:"not null"`
	Cost               valueobject.Money `gorm:"type:decimal(12,2);not null"`
	CustomizationImage string            `gorm:"type:varchar(200)"`
	CustomizationText  string            `gorm:"type:varchar(300)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a new order in PROCESSING with a zero total. Items and
// the total are attached by the lifecycle service after pricing.
func NewOrder(customerID uuid.UUID, shippingPct int, flatShipping bool, addressID *uuid.UUID) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer reference is required")
	}
	if shippingPct < 0 || shippingPct > 100 {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE", "Shipping rate must be between 0 and 100")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Status:            StatusProcessing,
		ShippingPct:       shippingPct,
		FlatShipping:      flatShipping,
		AddressID:         addressID,
		Total:             valueobject.ZeroINR(),
	}, nil
}

// NewOrderItem creates a line for the given order
func NewOrderItem(orderID, productID uuid.UUID, quantity int, cost valueobject.Money) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Cost:      cost,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetStatus replaces the status label. Any valid label is accepted
// regardless of the current one.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(status))
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// SetTotal records the computed order total
func (o *Order) SetTotal(total valueobject.Money) {
	o.Total = total.Round(2)
	o.UpdatedAt = time.Now()
}

// SetTracking attaches a shipment tracking id
func (o *Order) SetTracking(trackingID string) {
	o.TrackingID = trackingID
	o.UpdatedAt = time.Now()
}

// SetShipping updates the order-level shipping settings
func (o *Order) SetShipping(shippingPct int, flatShipping bool) error {
	if shippingPct < 0 || shippingPct > 100 {
		return shared.NewDomainError("INVALID_PERCENTAGE", "Shipping rate must be between 0 and 100")
	}
	o.ShippingPct = shippingPct
	o.FlatShipping = flatShipping
	o.UpdatedAt = time.Now()
	return nil
}

// BelongsTo reports whether the order is owned by the given customer
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID == customerID
}

// Customize attaches presentational customization to the line
func (i *OrderItem) Customize(imageURL, text string) {
	i.CustomizationImage = imageURL
	i.CustomizationText = text
	i.UpdatedAt = time.Now()
}

// Reprice replaces the line's quantity and cost after a recompute
func (i *OrderItem) Reprice(quantity int, cost valueobject.Money) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.Cost = cost.Round(2)
	i.UpdatedAt = time.Now()
	return nil
}
