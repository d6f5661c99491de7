package sitemeta

import (
	"time"

	"github.com/ngkart/backend/internal/domain/shared"
)

// SiteMetadata is the storefront's single configuration record: shipping
// policy, contact details and featured content. There is at most one row;
// reads return it, writes upsert it.
type SiteMetadata struct {
	shared.BaseEntity
	Title            string `gorm:"type:varchar(100);not null"`
	FlatShipping     bool   `gorm:"not null;default:false"`
	FlatShippingOver int    `gorm:"not null;default:0"`
	CODAllowed       bool   `gorm:"not null;default:false"`
	AddressLine1     string `gorm:"type:varchar(200)"`
	AddressLine2     string `gorm:"type:varchar(200)"`
	State            string `gorm:"type:varchar(100)"`
	Country          string `gorm:"type:varchar(100)"`
	PinCode          string `gorm:"type:varchar(10)"`
	Terms            string `gorm:"type:text"`
	FacebookURL      string `gorm:"type:varchar(200)"`
	InstagramURL     string `gorm:"type:varchar(200)"`
	TwitterURL       string `gorm:"type:varchar(200)"`
	Phones           string `gorm:"type:varchar(200)"`
	FeaturedProducts string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SiteMetadata) TableName() string {
	return "site_metadata"
}

// NewSiteMetadata creates the site configuration record
func NewSiteMetadata(title string) (*SiteMetadata, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Site title cannot be empty")
	}
	if len(title) > 100 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Site title cannot exceed 100 characters")
	}

	return &SiteMetadata{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
	}, nil
}

// SetShippingPolicy sets flat-shipping behaviour for the storefront.
// FlatShippingOver is the order total above which shipping is flat.
func (m *SiteMetadata) SetShippingPolicy(flatShipping bool, flatShippingOver int, codAllowed bool) error {
	if flatShippingOver < 0 {
		return shared.NewDomainError("INVALID_LIMIT", "Flat shipping limit cannot be negative")
	}
	m.FlatShipping = flatShipping
	m.FlatShippingOver = flatShippingOver
	m.CODAllowed = codAllowed
	m.UpdatedAt = time.Now()
	return nil
}

// SetContact sets the storefront's postal and phone details
func (m *SiteMetadata) SetContact(line1, line2, state, country, pinCode, phones string) {
	m.AddressLine1 = line1
	m.AddressLine2 = line2
	m.State = state
	m.Country = country
	m.PinCode = pinCode
	m.Phones = phones
	m.UpdatedAt = time.Now()
}

// SetSocialLinks sets the storefront's social profiles
func (m *SiteMetadata) SetSocialLinks(facebook, instagram, twitter string) {
	m.FacebookURL = facebook
	m.InstagramURL = instagram
	m.TwitterURL = twitter
	m.UpdatedAt = time.Now()
}

// SetContent sets the terms text and the featured product id list
// (comma-separated).
func (m *SiteMetadata) SetContent(terms, featuredProducts string) {
	m.Terms = terms
	m.FeaturedProducts = featuredProducts
	m.UpdatedAt = time.Now()
}
