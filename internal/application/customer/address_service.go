package customer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/customer"
	"github.com/ngkart/backend/internal/domain/shared"
)

// CreateAddressRequest represents a request to create a shipping address
type CreateAddressRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Line1   string `json:"line1" binding:"required,min=1,max=200"`
	Line2   string `json:"line2" binding:"max=200"`
	City    string `json:"city" binding:"required,min=1,max=100"`
	State   string `json:"state" binding:"max=100"`
	Country string `json:"country" binding:"max=100"`
	PinCode string `json:"pin_code" binding:"max=10"`
	Phone   string `json:"phone" binding:"max=20"`
}

// UpdateAddressRequest represents a request to update a shipping address
type UpdateAddressRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Line1   *string `json:"line1" binding:"omitempty,min=1,max=200"`
	Line2   *string `json:"line2" binding:"omitempty,max=200"`
	City    *string `json:"city" binding:"omitempty,min=1,max=100"`
	State   *string `json:"state" binding:"omitempty,max=100"`
	Country *string `json:"country" binding:"omitempty,max=100"`
	PinCode *string `json:"pin_code" binding:"omitempty,max=10"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
}

// AddressResponse represents a shipping address in API responses
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name,omitempty"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `json:"city"`
	State      string    `json:"state,omitempty"`
	Country    string    `json:"country"`
	PinCode    string    `json:"pin_code,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToAddressResponse converts a domain address to its response form
func ToAddressResponse(a *customer.ShippingAddress) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PinCode:    a.PinCode,
		Phone:      a.Phone,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AddressService handles shipping address operations
type AddressService struct {
	addressRepo customer.ShippingAddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo customer.ShippingAddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// Create creates a shipping address for a customer
func (s *AddressService) Create(ctx context.Context, customerID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	address, err := customer.NewShippingAddress(customerID, req.Name, req.Line1, req.City)
	if err != nil {
		return nil, err
	}
	if err := address.Update(req.Name, req.Line1, req.Line2, req.City, req.State, req.Country, req.PinCode, req.Phone); err != nil {
		return nil, err
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// GetByID retrieves an address by id
func (s *AddressService) GetByID(ctx context.Context, id uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}

// ListByCustomer retrieves a customer's addresses
func (s *AddressService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]AddressResponse, int64, error) {
	result, err := s.addressRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AddressResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToAddressResponse(&result.Items[i])
	}
	return responses, result.Total, nil
}

// Update applies partial changes to an address
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := address.Name
	line1 := address.Line1
	line2 := address.Line2
	city := address.City
	state := address.State
	country := address.Country
	pinCode := address.PinCode
	phone := address.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Line1 != nil {
		line1 = *req.Line1
	}
	if req.Line2 != nil {
		line2 = *req.Line2
	}
	if req.City != nil {
		city = *req.City
	}
	if req.State != nil {
		state = *req.State
	}
	if req.Country != nil {
		country = *req.Country
	}
	if req.PinCode != nil {
		pinCode = *req.PinCode
	}
	if req.Phone != nil {
		phone = *req.Phone
	}

	if err := address.Update(name, line1, line2, city, state, country, pinCode, phone); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.addressRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, id)
}

// OwnerOf returns the owning customer of an address, for capability checks
func (s *AddressService) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return address.CustomerID, nil
}
