package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngkart/backend/internal/domain/catalog"
)

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=100"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	FeaturedPrice int              `json:"featured_price" binding:"min=0"`
	Unit          string           `json:"unit" binding:"omitempty,oneof=KG CM PC"`
	Inventory     int              `json:"inventory" binding:"min=0"`
	DiscountPct   int              `json:"discount_pct" binding:"min=0,max=100"`
	ShippingPct   int              `json:"shipping_pct" binding:"min=0,max=100"`
	FlatShipping  bool             `json:"flat_shipping"`
	ImageURL      string           `json:"image_url"`
	Customizable  bool             `json:"customizable"`
	LaunchDate    *time.Time       `json:"launch_date"`
	TaxID         *uuid.UUID       `json:"tax_id"`
	CategorySlug  *string          `json:"category_slug"`
	Tags          string           `json:"tags"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	FeaturedPrice *int             `json:"featured_price" binding:"omitempty,min=0"`
	Inventory     *int             `json:"inventory" binding:"omitempty,min=0"`
	DiscountPct   *int             `json:"discount_pct" binding:"omitempty,min=0,max=100"`
	ShippingPct   *int             `json:"shipping_pct" binding:"omitempty,min=0,max=100"`
	FlatShipping  *bool            `json:"flat_shipping"`
	ImageURL      *string          `json:"image_url"`
	Customizable  *bool            `json:"customizable"`
	LaunchDate    *time.Time       `json:"launch_date"`
	TaxID         *uuid.UUID       `json:"tax_id"`
	CategorySlug  *string          `json:"category_slug"`
	Tags          *string          `json:"tags"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Category string           `form:"category"`
	Tag      string           `form:"tag"`
	MinPrice *decimal.Decimal `form:"min_price"`
	MaxPrice *decimal.Decimal `form:"max_price"`
	Search   string           `form:"search"`
	Page     int              `form:"page"`
	PageSize int              `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string           `form:"order_by"`
	OrderDir string           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url,omitempty"`
	Customizable  bool            `json:"customizable"`
	Price         decimal.Decimal `json:"price"`
	FeaturedPrice int             `json:"featured_price"`
	LaunchDate    *time.Time      `json:"launch_date,omitempty"`
	Inventory     int             `json:"inventory"`
	Unit          string          `json:"unit"`
	DiscountPct   int             `json:"discount_pct"`
	ShippingPct   int             `json:"shipping_pct"`
	FlatShipping  bool            `json:"flat_shipping"`
	TaxID         *uuid.UUID      `json:"tax_id,omitempty"`
	CategorySlug  *string         `json:"category_slug,omitempty"`
	Tags          string          `json:"tags,omitempty"`
	InStock       bool            `json:"in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		Customizable:  p.Customizable,
		Price:         p.Price,
		FeaturedPrice: p.FeaturedPrice,
		LaunchDate:    p.LaunchDate,
		Inventory:     p.Inventory,
		Unit:          string(p.Unit),
		DiscountPct:   p.DiscountPct,
		ShippingPct:   p.ShippingPct,
		FlatShipping:  p.FlatShipping,
		TaxID:         p.TaxID,
		CategorySlug:  p.CategorySlug,
		Tags:          p.Tags,
		InStock:       p.InStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.GetVersion(),
	}
}

// ==================== Tax DTOs ====================

// CreateTaxRequest represents a request to create a tax bracket
type CreateTaxRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Rate int    `json:"rate" binding:"min=0,max=100"`
}

// UpdateTaxRequest represents a request to update a tax bracket
type UpdateTaxRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=50"`
	Rate *int    `json:"rate" binding:"omitempty,min=0,max=100"`
}

// TaxResponse represents a tax bracket in API responses
type TaxResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Rate      int       `json:"rate"`
	Slug      string    `json:"slug"`
	Display   string    `json:"display"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToTaxResponse converts a domain tax to its response form
func ToTaxResponse(t *catalog.Tax) TaxResponse {
	return TaxResponse{
		ID:        t.ID,
		Name:      t.Name,
		Rate:      t.Rate,
		Slug:      t.Slug,
		Display:   t.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ==================== Tag DTOs ====================

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Slug string `json:"slug" binding:"required,min=1,max=100"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTagResponse converts a domain tag to its response form
func ToTagResponse(t *catalog.Tag) TagResponse {
	return TagResponse{Slug: t.Slug, CreatedAt: t.CreatedAt}
}

// ==================== Category DTOs ====================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Slug        string  `json:"slug" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=500"`
	ImageURL    string  `json:"image_url"`
	ParentSlug  *string `json:"parent_slug"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
	ImageURL    *string `json:"image_url"`
	ParentSlug  *string `json:"parent_slug"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	ParentSlug  *string   `json:"parent_slug,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to its response form
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		ParentSlug:  c.ParentSlug,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
