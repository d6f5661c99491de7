package customer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
)

// ShippingAddress is a delivery address owned by a single customer.
type ShippingAddress struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100)"`
	Line1      string    `gorm:"type:varchar(200);not null"`
	Line2      string    `gorm:"type:varchar(200)"`
	City       string    `gorm:"type:varchar(100);not null"`
	State      string    `gorm:"type:varchar(100)"`
	Country    string    `gorm:"type:varchar(100);not null;default:'India'"`
	PinCode    string    `gorm:"type:varchar(10)"`
	Phone      string    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}

// NewShippingAddress creates a new address for a customer
func NewShippingAddress(customerID uuid.UUID, name, line1, city string) (*ShippingAddress, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer reference is required")
	}
	if line1 == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}

	return &ShippingAddress{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Name:       name,
		Line1:      line1,
		City:       city,
		Country:    "India",
	}, nil
}

// Update replaces the address fields
func (a *ShippingAddress) Update(name, line1, line2, city, state, country, pinCode, phone string) error {
	if line1 == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if city == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if country == "" {
		country = "India"
	}

	a.Name = name
	a.Line1 = line1
	a.Line2 = line2
	a.City = city
	a.State = state
	a.Country = country
	a.PinCode = pinCode
	a.Phone = phone
	a.UpdatedAt = time.Now()

	return nil
}

// BelongsTo reports whether the address is owned by the given customer
func (a *ShippingAddress) BelongsTo(customerID uuid.UUID) bool {
	return a.CustomerID == customerID
}

// String returns a single-line postal rendering
func (a *ShippingAddress) String() string {
	line := a.Line1
	if a.Line2 != "" {
		line = fmt.Sprintf("%s, %s", line, a.Line2)
	}
	return fmt.Sprintf("%s, %s, %s %s, %s", line, a.City, a.State, a.PinCode, a.Country)
}
