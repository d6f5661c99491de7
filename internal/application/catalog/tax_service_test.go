package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

func TestTaxServiceCreate(t *testing.T) {
	repo := new(MockTaxRepository)
	repo.On("FindByNameAndRate", mock.Anything, "GST", 18).Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Tax")).Return(nil)

	service := NewTaxService(repo)
	resp, err := service.Create(context.Background(), CreateTaxRequest{Name: "GST", Rate: 18})

	require.NoError(t, err)
	assert.Equal(t, "GST", resp.Name)
	assert.Equal(t, 18, resp.Rate)
	repo.AssertExpectations(t)
}

func TestTaxServiceCreateDuplicatePair(t *testing.T) {
	existing, err := catalog.NewTax("GST", 18)
	require.NoError(t, err)

	repo := new(MockTaxRepository)
	repo.On("FindByNameAndRate", mock.Anything, "GST", 18).Return(existing, nil)

	service := NewTaxService(repo)
	_, err = service.Create(context.Background(), CreateTaxRequest{Name: "GST", Rate: 18})

	assert.Equal(t, shared.ErrAlreadyExists, err)
	repo.AssertNotCalled(t, "Save")
}

func TestTaxServiceUpdate(t *testing.T) {
	tax, err := catalog.NewTax("GST", 18)
	require.NoError(t, err)

	repo := new(MockTaxRepository)
	repo.On("FindByID", mock.Anything, tax.ID).Return(tax, nil)
	repo.On("Save", mock.Anything, tax).Return(nil)

	rate := 12
	service := NewTaxService(repo)
	resp, err := service.Update(context.Background(), tax.ID, UpdateTaxRequest{Rate: &rate})

	require.NoError(t, err)
	assert.Equal(t, "GST", resp.Name)
	assert.Equal(t, 12, resp.Rate)
}

func TestTaxServiceDeleteNotFound(t *testing.T) {
	repo := new(MockTaxRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	service := NewTaxService(repo)
	err := service.Delete(context.Background(), uuid.New())

	assert.Equal(t, shared.ErrNotFound, err)
	repo.AssertNotCalled(t, "Delete")
}
