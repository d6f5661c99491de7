package order

import (
	"context"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories an
// order mutation touches. Everything done inside Execute commits or rolls
// back as one unit: the order row, its items, and the inventory debits.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories scoped to
// the current transaction. ProductRepo's FindByIDForUpdate only takes a
// row lock when called through a scope obtained here.
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	TaxRepo() catalog.TaxRepository
	OrderRepo() order.OrderRepository
	ItemRepo() order.OrderItemRepository
}

// NoOpTransactionScope runs the function against plain repositories with
// no real transaction. For tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	taxRepo     catalog.TaxRepository
	orderRepo   order.OrderRepository
	itemRepo    order.OrderItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	taxRepo catalog.TaxRepository,
	orderRepo order.OrderRepository,
	itemRepo order.OrderItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		taxRepo:     taxRepo,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// TaxRepo returns the tax repository
func (s *NoOpTransactionScope) TaxRepo() catalog.TaxRepository { return s.taxRepo }

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository { return s.orderRepo }

// ItemRepo returns the order item repository
func (s *NoOpTransactionScope) ItemRepo() order.OrderItemRepository { return s.itemRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
