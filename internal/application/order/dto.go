package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngkart/backend/internal/domain/order"
)

// CreateOrderRequest represents a request to create an order with its items
type CreateOrderRequest struct {
	ShippingPct  int                    `json:"shipping_pct" binding:"min=0,max=100"`
	FlatShipping bool                   `json:"flat_shipping"`
	AddressID    *uuid.UUID             `json:"address_id"`
	Items        []CreateOrderItemInput `json:"items"`
}

// CreateOrderItemInput represents one requested line. Product id and
// quantity are pointers so absent fields are reported per line by the
// pricing pass rather than rejected wholesale by binding.
type CreateOrderItemInput struct {
	ProductID          *uuid.UUID `json:"product_id"`
	Quantity           *int       `json:"quantity"`
	CustomizationImage string     `json:"customization_image"`
	CustomizationText  string     `json:"customization_text"`
}

// AddItemRequest represents a request to add one item to an existing order
type AddItemRequest struct {
	ProductID          uuid.UUID `json:"product_id" binding:"required"`
	Quantity           int       `json:"quantity" binding:"required,gt=0"`
	CustomizationImage string    `json:"customization_image"`
	CustomizationText  string    `json:"customization_text"`
}

// UpdateItemRequest represents a request to change an item's quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderRequest represents a generic order field update
type UpdateOrderRequest struct {
	Status       *order.Status `json:"status"`
	ShippingPct  *int          `json:"shipping_pct"`
	FlatShipping *bool         `json:"flat_shipping"`
	AddressID    *uuid.UUID    `json:"address_id"`
	TrackingID   *string       `json:"tracking_id"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   *order.Status `form:"status"`
	Search   string        `form:"search"`
	Page     int           `form:"page"`
	PageSize int           `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string        `form:"order_by"`
	OrderDir string        `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	OrderID            uuid.UUID       `json:"order_id"`
	ProductID          uuid.UUID       `json:"product_id"`
	Quantity           int             `json:"quantity"`
	Cost               decimal.Decimal `json:"cost"`
	CustomizationImage string          `json:"customization_image,omitempty"`
	CustomizationText  string          `json:"customization_text,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	Status       string              `json:"status"`
	ShippingPct  int                 `json:"shipping_pct"`
	FlatShipping bool                `json:"flat_shipping"`
	AddressID    *uuid.UUID          `json:"address_id,omitempty"`
	Total        decimal.Decimal     `json:"total"`
	TrackingID   string              `json:"tracking_id,omitempty"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// ToOrderItemResponse converts a domain order item to its response form
func ToOrderItemResponse(item *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		OrderID:            item.OrderID,
		ProductID:          item.ProductID,
		Quantity:           item.Quantity,
		Cost:               item.Cost.Amount(),
		CustomizationImage: item.CustomizationImage,
		CustomizationText:  item.CustomizationText,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		Status:       string(o.Status),
		ShippingPct:  o.ShippingPct,
		FlatShipping: o.FlatShipping,
		AddressID:    o.AddressID,
		Total:        o.Total.Amount(),
		TrackingID:   o.TrackingID,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		Version:      o.GetVersion(),
	}
	for i := range o.Items {
		response.Items = append(response.Items, ToOrderItemResponse(&o.Items[i]))
	}
	return response
}
