package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

func newTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", decimal.NewFromInt(250), 200, catalog.UnitPiece, nil)
	require.NoError(t, err)
	return product
}

func TestProductServiceCreate(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindBySlug", mock.Anything, "clay-teapot").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	service := NewProductService(repo)
	resp, err := service.Create(context.Background(), nil, CreateProductRequest{
		Name:          "Clay Teapot",
		Price:         decimal.NewFromInt(250),
		FeaturedPrice: 200,
		Inventory:     5,
		DiscountPct:   10,
		Tags:          "Handmade,Festive",
	})

	require.NoError(t, err)
	assert.Equal(t, "Clay Teapot", resp.Name)
	assert.Equal(t, "clay-teapot", resp.Slug)
	assert.Equal(t, 5, resp.Inventory)
	assert.Equal(t, 10, resp.DiscountPct)
	repo.AssertExpectations(t)
}

func TestProductServiceCreateDuplicateSlug(t *testing.T) {
	existing := newTestProduct(t, "Clay Teapot")

	repo := new(MockProductRepository)
	repo.On("FindBySlug", mock.Anything, "clay-teapot").Return(existing, nil)

	service := NewProductService(repo)
	_, err := service.Create(context.Background(), nil, CreateProductRequest{
		Name:          "Clay Teapot",
		Price:         decimal.NewFromInt(250),
		FeaturedPrice: 200,
	})

	assert.Equal(t, shared.ErrAlreadyExists, err)
	repo.AssertNotCalled(t, "Save")
}

func TestProductServiceCreateInvalidName(t *testing.T) {
	repo := new(MockProductRepository)

	service := NewProductService(repo)
	_, err := service.Create(context.Background(), nil, CreateProductRequest{
		Name:  "",
		Price: decimal.NewFromInt(250),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_NAME", domainErr.Code)
}

func TestProductServiceGetByID(t *testing.T) {
	product := newTestProduct(t, "Clay Teapot")

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	service := NewProductService(repo)
	resp, err := service.GetByID(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Equal(t, product.ID, resp.ID)
	assert.Equal(t, "Clay Teapot", resp.Name)
}

func TestProductServiceGetByIDNotFound(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	service := NewProductService(repo)
	_, err := service.GetByID(context.Background(), uuid.New())

	assert.Equal(t, shared.ErrNotFound, err)
}

func TestProductServiceListUsesCategoryFinder(t *testing.T) {
	page := shared.NewPaginated([]catalog.Product{*newTestProduct(t, "Clay Teapot")}, 1, 1, 20)

	repo := new(MockProductRepository)
	repo.On("FindByCategory", mock.Anything, "pottery", mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	service := NewProductService(repo)
	items, total, err := service.List(context.Background(), ProductListFilter{Category: "pottery"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
	repo.AssertNotCalled(t, "FindAll")
}

func TestProductServiceListForwardsFilters(t *testing.T) {
	page := shared.NewPaginated([]catalog.Product{}, 0, 1, 20)
	minPrice := decimal.NewFromInt(100)

	repo := new(MockProductRepository)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["tag"] == "Handmade" && f.Search == "teapot"
	})).Return(&page, nil)

	service := NewProductService(repo)
	_, _, err := service.List(context.Background(), ProductListFilter{
		Tag:      "Handmade",
		Search:   "teapot",
		MinPrice: &minPrice,
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProductServiceUpdate(t *testing.T) {
	product := newTestProduct(t, "Clay Teapot")

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("SaveWithLock", mock.Anything, product).Return(nil)

	newName := "Glazed Teapot"
	inventory := 12

	service := NewProductService(repo)
	resp, err := service.Update(context.Background(), product.ID, UpdateProductRequest{
		Name:      &newName,
		Inventory: &inventory,
	})

	require.NoError(t, err)
	assert.Equal(t, "Glazed Teapot", resp.Name)
	assert.Equal(t, "glazed-teapot", resp.Slug)
	assert.Equal(t, 12, resp.Inventory)
	repo.AssertExpectations(t)
}

func TestProductServiceUpdateConflict(t *testing.T) {
	product := newTestProduct(t, "Clay Teapot")

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("SaveWithLock", mock.Anything, product).Return(shared.ErrConcurrencyConflict)

	inventory := 3
	service := NewProductService(repo)
	_, err := service.Update(context.Background(), product.ID, UpdateProductRequest{Inventory: &inventory})

	assert.Equal(t, shared.ErrConcurrencyConflict, err)
}

func TestProductServiceDelete(t *testing.T) {
	product := newTestProduct(t, "Clay Teapot")

	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Delete", mock.Anything, product.ID).Return(nil)

	service := NewProductService(repo)
	require.NoError(t, service.Delete(context.Background(), product.ID))
	repo.AssertExpectations(t)
}

func TestProductServiceDeleteNotFound(t *testing.T) {
	repo := new(MockProductRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	service := NewProductService(repo)
	err := service.Delete(context.Background(), uuid.New())

	assert.Equal(t, shared.ErrNotFound, err)
	repo.AssertNotCalled(t, "Delete")
}
