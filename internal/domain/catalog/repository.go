package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	// SaveWithLock persists the product only if its version has not moved
	// underneath us, returning ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDForUpdate loads the product under a row lock. Only valid
	// inside a transaction scope.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Product], error)
	FindByCategory(ctx context.Context, categorySlug string, filter shared.Filter) (*shared.Paginated[Product], error)
	FindAllNames(ctx context.Context) (map[uuid.UUID]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxRepository defines persistence operations for tax brackets
type TaxRepository interface {
	Save(ctx context.Context, tax *Tax) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tax, error)
	FindByNameAndRate(ctx context.Context, name string, rate int) (*Tax, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Tax], error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Tax, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagRepository defines persistence operations for tags
type TagRepository interface {
	Save(ctx context.Context, tag *Tag) error
	FindBySlug(ctx context.Context, slug string) (*Tag, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Tag], error)
	Delete(ctx context.Context, slug string) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Category], error)
	FindChildren(ctx context.Context, parentSlug string) ([]Category, error)
	Delete(ctx context.Context, slug string) error
}
