package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngkart/backend/internal/domain/shared"
)

// InventoryUnit is the unit a product's stock is counted in.
type InventoryUnit string

const (
	UnitKilogram   InventoryUnit = "KG"
	UnitCentimeter InventoryUnit = "CM"
	UnitPiece      InventoryUnit = "PC"
)

// IsValid checks whether the unit is one of the supported values.
func (u InventoryUnit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitCentimeter, UnitPiece:
		return true
	}
	return false
}

// Product is the catalog aggregate. FeaturedPrice is the price used by
// order costing; Price is the listed (pre-discount) figure shown alongside it.
// Inventory can never go negative: all debits go through Reserve.
type Product struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(100);not null"`
	Slug          string          `gorm:"type:varchar(120);uniqueIndex;not null"`
	Description   string          `gorm:"type:text"`
	ImageURL      string          `gorm:"type:varchar(200)"`
	Customizable  bool            `gorm:"not null;default:false"`
	Price         decimal.Decimal `gorm:"type:decimal(9,2);not null"`
	FeaturedPrice int             `gorm:"not null"`
	LaunchDate    *time.Time
	Inventory     int           `gorm:"not null;default:0"`
	Unit          InventoryUnit `gorm:"type:varchar(2);not null;default:'PC'"`
	CreatedByID   *uuid.UUID    `gorm:"type:uuid;index"`
	DiscountPct   int           `gorm:"not null;default:0"`
	ShippingPct   int           `gorm:"not null;default:0"`
	FlatShipping  bool          `gorm:"not null;default:false"`
	TaxID         *uuid.UUID    `gorm:"type:uuid;index"`
	CategorySlug  *string       `gorm:"type:varchar(100);index"`
	Tags          string        `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with a slug derived from its name.
func NewProduct(name, description string, price decimal.Decimal, featuredPrice int, unit InventoryUnit, createdBy *uuid.UUID) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if featuredPrice < 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Featured price cannot be negative")
	}
	if unit == "" {
		unit = UnitPiece
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", fmt.Sprintf("Invalid inventory unit: %s", unit))
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              Slugify(name),
		Description:       description,
		Price:             price,
		FeaturedPrice:     featuredPrice,
		Unit:              unit,
		CreatedByID:       createdBy,
	}, nil
}

// Update updates the product's basic attributes. The slug follows the name.
func (p *Product) Update(name, description string, price decimal.Decimal, featuredPrice int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if featuredPrice < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Featured price cannot be negative")
	}

	p.Name = name
	p.Slug = Slugify(name)
	p.Description = description
	p.Price = price
	p.FeaturedPrice = featuredPrice
	p.UpdatedAt = time.Now()

	return nil
}

// SetPricingRates sets the discount, shipping and flat-shipping settings.
func (p *Product) SetPricingRates(discountPct, shippingPct int, flatShipping bool) error {
	if err := validatePercentage(discountPct, "discount"); err != nil {
		return err
	}
	if err := validatePercentage(shippingPct, "shipping rate"); err != nil {
		return err
	}

	p.DiscountPct = discountPct
	p.ShippingPct = shippingPct
	p.FlatShipping = flatShipping
	p.UpdatedAt = time.Now()

	return nil
}

// SetClassification assigns tax, category and tags.
func (p *Product) SetClassification(taxID *uuid.UUID, categorySlug *string, tags string) error {
	if len(tags) > 300 {
		return shared.NewDomainError("INVALID_TAGS", "Tags cannot exceed 300 characters")
	}
	p.TaxID = taxID
	p.CategorySlug = categorySlug
	p.Tags = tags
	p.UpdatedAt = time.Now()
	return nil
}

// SetPresentation updates the image, customizable flag and launch date.
func (p *Product) SetPresentation(imageURL string, customizable bool, launchDate *time.Time) {
	p.ImageURL = imageURL
	p.Customizable = customizable
	p.LaunchDate = launchDate
	p.UpdatedAt = time.Now()
}

// Reserve debits inventory for an order. It fails when the requested
// quantity exceeds what is on hand, leaving the count untouched.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.Inventory {
		return shared.ErrInsufficientInventory
	}

	p.Inventory -= quantity
	p.UpdatedAt = time.Now()

	return nil
}

// Restock credits inventory back, for item removal or order cancellation.
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	p.Inventory += quantity
	p.UpdatedAt = time.Now()

	return nil
}

// AdjustInventory applies a signed delta: positive restocks, negative
// reserves. A zero delta is a no-op.
func (p *Product) AdjustInventory(delta int) error {
	switch {
	case delta > 0:
		return p.Restock(delta)
	case delta < 0:
		return p.Reserve(-delta)
	}
	return nil
}

// SetInventory replaces the stock count outright (admin correction).
func (p *Product) SetInventory(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}
	p.Inventory = count
	p.UpdatedAt = time.Now()
	return nil
}

// InStock returns true if at least one unit is available.
func (p *Product) InStock() bool {
	return p.Inventory > 0
}

// IsLaunched returns true if the product has no launch date or it has passed.
func (p *Product) IsLaunched(at time.Time) bool {
	return p.LaunchDate == nil || !p.LaunchDate.After(at)
}
