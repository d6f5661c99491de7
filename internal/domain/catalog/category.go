package catalog

import (
	"time"

	"github.com/ngkart/backend/internal/domain/shared"
)

// Category groups products in a single-parent hierarchy, keyed by slug.
// Deleting a parent detaches children rather than cascading.
type Category struct {
	Slug        string  `gorm:"type:varchar(100);primaryKey"`
	Description string  `gorm:"type:varchar(500)"`
	ImageURL    string  `gorm:"type:varchar(200)"`
	ParentSlug  *string `gorm:"type:varchar(100);index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(slug, description, imageURL string) (*Category, error) {
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}
	if len(slug) > 100 {
		return nil, shared.NewDomainError("INVALID_SLUG", "Category slug cannot exceed 100 characters")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Category description cannot exceed 500 characters")
	}

	now := time.Now()
	return &Category{
		Slug:        Capitalize(slug),
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update updates the category's description and image
func (c *Category) Update(description, imageURL string) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Category description cannot exceed 500 characters")
	}

	c.Description = description
	c.ImageURL = imageURL
	c.UpdatedAt = time.Now()

	return nil
}

// SetParent sets the parent category. A category cannot be its own parent.
func (c *Category) SetParent(parentSlug *string) error {
	if parentSlug != nil && *parentSlug == c.Slug {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentSlug = parentSlug
	c.UpdatedAt = time.Now()
	return nil
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentSlug == nil
}
