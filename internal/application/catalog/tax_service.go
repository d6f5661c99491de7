package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// TaxService handles tax bracket operations
type TaxService struct {
	taxRepo catalog.TaxRepository
}

// NewTaxService creates a new TaxService
func NewTaxService(taxRepo catalog.TaxRepository) *TaxService {
	return &TaxService{taxRepo: taxRepo}
}

// Create creates a new tax bracket. (name, rate) pairs are unique.
func (s *TaxService) Create(ctx context.Context, req CreateTaxRequest) (*TaxResponse, error) {
	if _, err := s.taxRepo.FindByNameAndRate(ctx, req.Name, req.Rate); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tax, err := catalog.NewTax(req.Name, req.Rate)
	if err != nil {
		return nil, err
	}
	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	response := ToTaxResponse(tax)
	return &response, nil
}

// GetByID retrieves a tax bracket by id
func (s *TaxService) GetByID(ctx context.Context, id uuid.UUID) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTaxResponse(tax)
	return &response, nil
}

// List retrieves tax brackets with pagination
func (s *TaxService) List(ctx context.Context, filter shared.Filter) ([]TaxResponse, int64, error) {
	result, err := s.taxRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TaxResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToTaxResponse(&result.Items[i])
	}
	return responses, result.Total, nil
}

// Update updates a tax bracket's name and rate
func (s *TaxService) Update(ctx context.Context, id uuid.UUID, req UpdateTaxRequest) (*TaxResponse, error) {
	tax, err := s.taxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := tax.Name
	rate := tax.Rate
	if req.Name != nil {
		name = *req.Name
	}
	if req.Rate != nil {
		rate = *req.Rate
	}
	if err := tax.Update(name, rate); err != nil {
		return nil, err
	}

	if err := s.taxRepo.Save(ctx, tax); err != nil {
		return nil, err
	}

	response := ToTaxResponse(tax)
	return &response, nil
}

// Delete removes a tax bracket
func (s *TaxService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taxRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.taxRepo.Delete(ctx, id)
}
