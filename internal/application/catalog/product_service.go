package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// ProductService handles catalog product operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product. The slug is derived from the name;
// a clashing slug fails with ALREADY_EXISTS.
func (s *ProductService) Create(ctx context.Context, createdBy *uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, req.Price, req.FeaturedPrice, catalog.InventoryUnit(req.Unit), createdBy)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindBySlug(ctx, product.Slug); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.Inventory > 0 {
		if err := product.SetInventory(req.Inventory); err != nil {
			return nil, err
		}
	}
	if err := product.SetPricingRates(req.DiscountPct, req.ShippingPct, req.FlatShipping); err != nil {
		return nil, err
	}
	if err := product.SetClassification(req.TaxID, req.CategorySlug, req.Tags); err != nil {
		return nil, err
	}
	product.SetPresentation(req.ImageURL, req.Customizable, req.LaunchDate)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by id
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.OrderBy = filter.OrderBy
	f.OrderDir = filter.OrderDir
	if filter.Tag != "" {
		f.Filters["tag"] = filter.Tag
	}
	if filter.MinPrice != nil {
		f.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		f.Filters["max_price"] = *filter.MaxPrice
	}

	var result *shared.Paginated[catalog.Product]
	var err error
	if filter.Category != "" {
		result, err = s.productRepo.FindByCategory(ctx, filter.Category, f)
	} else {
		result, err = s.productRepo.FindAll(ctx, f)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToProductResponse(&result.Items[i])
	}
	return responses, result.Total, nil
}

// Update applies partial changes to a product under optimistic locking
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Price != nil || req.FeaturedPrice != nil {
		name := product.Name
		description := product.Description
		price := product.Price
		featuredPrice := product.FeaturedPrice
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Price != nil {
			price = *req.Price
		}
		if req.FeaturedPrice != nil {
			featuredPrice = *req.FeaturedPrice
		}
		if err := product.Update(name, description, price, featuredPrice); err != nil {
			return nil, err
		}
	}

	if req.Inventory != nil {
		if err := product.SetInventory(*req.Inventory); err != nil {
			return nil, err
		}
	}

	if req.DiscountPct != nil || req.ShippingPct != nil || req.FlatShipping != nil {
		discount := product.DiscountPct
		shipping := product.ShippingPct
		flat := product.FlatShipping
		if req.DiscountPct != nil {
			discount = *req.DiscountPct
		}
		if req.ShippingPct != nil {
			shipping = *req.ShippingPct
		}
		if req.FlatShipping != nil {
			flat = *req.FlatShipping
		}
		if err := product.SetPricingRates(discount, shipping, flat); err != nil {
			return nil, err
		}
	}

	if req.TaxID != nil || req.CategorySlug != nil || req.Tags != nil {
		taxID := product.TaxID
		categorySlug := product.CategorySlug
		tags := product.Tags
		if req.TaxID != nil {
			taxID = req.TaxID
		}
		if req.CategorySlug != nil {
			categorySlug = req.CategorySlug
		}
		if req.Tags != nil {
			tags = *req.Tags
		}
		if err := product.SetClassification(taxID, categorySlug, tags); err != nil {
			return nil, err
		}
	}

	if req.ImageURL != nil || req.Customizable != nil || req.LaunchDate != nil {
		imageURL := product.ImageURL
		customizable := product.Customizable
		launchDate := product.LaunchDate
		if req.ImageURL != nil {
			imageURL = *req.ImageURL
		}
		if req.Customizable != nil {
			customizable = *req.Customizable
		}
		if req.LaunchDate != nil {
			launchDate = req.LaunchDate
		}
		product.SetPresentation(imageURL, customizable, launchDate)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
