package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngkart/backend/internal/domain/shared"
)

// Tax represents a tax code applied to product pricing.
// Referenced, never mutated, by pricing computations.
type Tax struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tax_name_rate,priority:1"`
	Rate int    `gorm:"not null;default:0;uniqueIndex:idx_tax_name_rate,priority:2"` // percentage [0,100]
	Slug string `gorm:"type:varchar(100);not null;index"`
}

// TableName returns the table name for GORM
func (Tax) TableName() string {
	return "taxes"
}

// NewTax creates a new tax code
func NewTax(name string, rate int) (*Tax, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax name cannot exceed 50 characters")
	}
	if err := validatePercentage(rate, "Tax rate"); err != nil {
		return nil, err
	}

	return &Tax{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Rate:              rate,
		Slug:              Slugify(name),
	}, nil
}

// Update updates the tax name and rate
func (t *Tax) Update(name string, rate int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tax name cannot be empty")
	}
	if err := validatePercentage(rate, "Tax rate"); err != nil {
		return err
	}

	t.Name = name
	t.Rate = rate
	t.Slug = Slugify(name)
	t.UpdatedAt = time.Now()

	return nil
}

// String returns a display representation, e.g. "GST @ 8%"
func (t *Tax) String() string {
	return fmt.Sprintf("%s @ %d%%", t.Name, t.Rate)
}

// validatePercentage checks that a percentage value lies in [0,100]
func validatePercentage(value int, field string) error {
	if value < 0 || value > 100 {
		return shared.NewDomainError("INVALID_PERCENTAGE", field+" must be between 0 and 100")
	}
	return nil
}

// Slugify converts a display name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	prevHyphen := false
	for _, r := range slug {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
