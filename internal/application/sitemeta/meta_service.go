package sitemeta

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/sitemeta"
)

// UpdateMetadataRequest represents a request to set the site configuration.
// The record is upserted: the first write creates it.
type UpdateMetadataRequest struct {
	Title            *string `json:"title" binding:"omitempty,min=1,max=100"`
	FlatShipping     *bool   `json:"flat_shipping"`
	FlatShippingOver *int    `json:"flat_shipping_over" binding:"omitempty,min=0"`
	CODAllowed       *bool   `json:"cod_allowed"`
	AddressLine1     *string `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2     *string `json:"address_line2" binding:"omitempty,max=200"`
	State            *string `json:"state" binding:"omitempty,max=100"`
	Country          *string `json:"country" binding:"omitempty,max=100"`
	PinCode          *string `json:"pin_code" binding:"omitempty,max=10"`
	Terms            *string `json:"terms"`
	FacebookURL      *string `json:"facebook_url" binding:"omitempty,max=200"`
	InstagramURL     *string `json:"instagram_url" binding:"omitempty,max=200"`
	TwitterURL       *string `json:"twitter_url" binding:"omitempty,max=200"`
	Phones           *string `json:"phones" binding:"omitempty,max=200"`
	FeaturedProducts *string `json:"featured_products" binding:"omitempty,max=500"`
}

// MetadataResponse represents the site configuration in API responses
type MetadataResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	FlatShipping     bool      `json:"flat_shipping"`
	FlatShippingOver int       `json:"flat_shipping_over"`
	CODAllowed       bool      `json:"cod_allowed"`
	AddressLine1     string    `json:"address_line1,omitempty"`
	AddressLine2     string    `json:"address_line2,omitempty"`
	State            string    `json:"state,omitempty"`
	Country          string    `json:"country,omitempty"`
	PinCode          string    `json:"pin_code,omitempty"`
	Terms            string    `json:"terms,omitempty"`
	FacebookURL      string    `json:"facebook_url,omitempty"`
	InstagramURL     string    `json:"instagram_url,omitempty"`
	TwitterURL       string    `json:"twitter_url,omitempty"`
	Phones           string    `json:"phones,omitempty"`
	FeaturedProducts string    `json:"featured_products,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToMetadataResponse converts the domain record to its response form
func ToMetadataResponse(m *sitemeta.SiteMetadata) MetadataResponse {
	return MetadataResponse{
		ID:               m.ID,
		Title:            m.Title,
		FlatShipping:     m.FlatShipping,
		FlatShippingOver: m.FlatShippingOver,
		CODAllowed:       m.CODAllowed,
		AddressLine1:     m.AddressLine1,
		AddressLine2:     m.AddressLine2,
		State:            m.State,
		Country:          m.Country,
		PinCode:          m.PinCode,
		Terms:            m.Terms,
		FacebookURL:      m.FacebookURL,
		InstagramURL:     m.InstagramURL,
		TwitterURL:       m.TwitterURL,
		Phones:           m.Phones,
		FeaturedProducts: m.FeaturedProducts,
		UpdatedAt:        m.UpdatedAt,
	}
}

// MetadataService handles the storefront's single configuration record
type MetadataService struct {
	metaRepo sitemeta.SiteMetadataRepository
}

// NewMetadataService creates a new MetadataService
func NewMetadataService(metaRepo sitemeta.SiteMetadataRepository) *MetadataService {
	return &MetadataService{metaRepo: metaRepo}
}

// Get retrieves the site configuration
func (s *MetadataService) Get(ctx context.Context) (*MetadataResponse, error) {
	meta, err := s.metaRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := ToMetadataResponse(meta)
	return &response, nil
}

// Update upserts the site configuration. A missing record is created,
// which requires a title on first write.
func (s *MetadataService) Update(ctx context.Context, req UpdateMetadataRequest) (*MetadataResponse, error) {
	meta, err := s.metaRepo.Get(ctx)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		if req.Title == nil {
			return nil, shared.NewDomainError("INVALID_TITLE", "Site title is required on first write")
		}
		meta, err = sitemeta.NewSiteMetadata(*req.Title)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if req.Title != nil {
			meta.Title = *req.Title
		}
	}

	if req.FlatShipping != nil || req.FlatShippingOver != nil || req.CODAllowed != nil {
		flat := meta.FlatShipping
		over := meta.FlatShippingOver
		cod := meta.CODAllowed
		if req.FlatShipping != nil {
			flat = *req.FlatShipping
		}
		if req.FlatShippingOver != nil {
			over = *req.FlatShippingOver
		}
		if req.CODAllowed != nil {
			cod = *req.CODAllowed
		}
		if err := meta.SetShippingPolicy(flat, over, cod); err != nil {
			return nil, err
		}
	}

	if req.AddressLine1 != nil || req.AddressLine2 != nil || req.State != nil ||
		req.Country != nil || req.PinCode != nil || req.Phones != nil {
		line1, line2 := meta.AddressLine1, meta.AddressLine2
		state, country, pin, phones := meta.State, meta.Country, meta.PinCode, meta.Phones
		if req.AddressLine1 != nil {
			line1 = *req.AddressLine1
		}
		if req.AddressLine2 != nil {
			line2 = *req.AddressLine2
		}
		if req.State != nil {
			state = *req.State
		}
		if req.Country != nil {
			country = *req.Country
		}
		if req.PinCode != nil {
			pin = *req.PinCode
		}
		if req.Phones != nil {
			phones = *req.Phones
		}
		meta.SetContact(line1, line2, state, country, pin, phones)
	}

	if req.FacebookURL != nil || req.InstagramURL != nil || req.TwitterURL != nil {
		fb, ig, tw := meta.FacebookURL, meta.InstagramURL, meta.TwitterURL
		if req.FacebookURL != nil {
			fb = *req.FacebookURL
		}
		if req.InstagramURL != nil {
			ig = *req.InstagramURL
		}
		if req.TwitterURL != nil {
			tw = *req.TwitterURL
		}
		meta.SetSocialLinks(fb, ig, tw)
	}

	if req.Terms != nil || req.FeaturedProducts != nil {
		terms, featured := meta.Terms, meta.FeaturedProducts
		if req.Terms != nil {
			terms = *req.Terms
		}
		if req.FeaturedProducts != nil {
			featured = *req.FeaturedProducts
		}
		meta.SetContent(terms, featured)
	}

	if err := s.metaRepo.Save(ctx, meta); err != nil {
		return nil, err
	}

	response := ToMetadataResponse(meta)
	return &response, nil
}
