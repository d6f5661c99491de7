package catalog

import (
	"strings"
	"time"

	"github.com/ngkart/backend/internal/domain/shared"
)

// Tag is a free-form label attached to products, keyed by its slug.
type Tag struct {
	Slug      string `gorm:"type:varchar(100);primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a new tag. The slug is capitalized on write,
// matching how tags are displayed.
func NewTag(slug string) (*Tag, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Tag slug cannot be empty")
	}
	if len(slug) > 100 {
		return nil, shared.NewDomainError("INVALID_SLUG", "Tag slug cannot exceed 100 characters")
	}

	now := time.Now()
	return &Tag{
		Slug:      Capitalize(slug),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Capitalize upper-cases the first rune of a slug
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
