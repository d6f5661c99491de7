package order

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/order"
	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/shared/valueobject"
	"github.com/ngkart/backend/internal/domain/sitemeta"
)

// ValidationError carries the per-item error map from a failed pricing
// pass. The whole order is rejected; nothing was written.
type ValidationError struct {
	Errors map[string]string
}

// Error returns a summary; the per-item detail lives in Errors.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("order validation failed for %d item(s)", len(e.Errors))
}

// OrderService orchestrates order and order-item lifecycle: pricing,
// inventory reconciliation and persistence as one transactional unit.
type OrderService struct {
	scope     TransactionScope
	orderRepo order.OrderRepository
	itemRepo  order.OrderItemRepository
	metaRepo  sitemeta.SiteMetadataRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope, orderRepo order.OrderRepository, itemRepo order.OrderItemRepository, metaRepo sitemeta.SiteMetadataRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		scope:     scope,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		metaRepo:  metaRepo,
		logger:    logger,
	}
}

// Create prices the requested items and, when every line is clean,
// persists the order, its items and the inventory debits in a single
// transaction. Any failure rolls the whole unit back: no partial orders.
// A non-empty pricing error map is returned as *ValidationError.
func (s *OrderService) Create(ctx context.Context, customerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	var response *OrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := s.lockProducts(ctx, repos, req.Items)
		if err != nil {
			return err
		}
		taxes, err := s.fetchTaxes(ctx, repos, products)
		if err != nil {
			return err
		}

		requested := make([]order.ItemRequest, len(req.Items))
		for i, item := range req.Items {
			requested[i] = order.ItemRequest{
				ProductID:          item.ProductID,
				Quantity:           item.Quantity,
				CustomizationImage: item.CustomizationImage,
				CustomizationText:  item.CustomizationText,
			}
		}

		quote := order.PriceOrder(requested, products, taxes, s.shippingPolicy(ctx, req.ShippingPct, req.FlatShipping))
		if !quote.OK() {
			return &ValidationError{Errors: quote.Errors}
		}

		ord, err := order.NewOrder(customerID, req.ShippingPct, req.FlatShipping, req.AddressID)
		if err != nil {
			return err
		}
		ord.SetTotal(quote.Total)
		if err := repos.OrderRepo().Save(ctx, ord); err != nil {
			return err
		}

		for _, priced := range quote.Items {
			product := products[priced.ProductID]
			if err := product.Reserve(priced.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}

			item, err := order.NewOrderItem(ord.ID, priced.ProductID, priced.Quantity, priced.Cost)
			if err != nil {
				return err
			}
			item.Customize(priced.CustomizationImage, priced.CustomizationText)
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			ord.Items = append(ord.Items, *item)
		}

		r := ToOrderResponse(ord)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// AddItem appends one line to an existing order. Lines are write-once
// per (order, product): a second add for the same product fails with
// DUPLICATE_ITEMS; quantity changes go through UpdateItemQuantity.
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddItemRequest) (*OrderItemResponse, error) {
	var response *OrderItemResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if _, err := repos.ItemRepo().FindByKey(ctx, orderID, req.ProductID); err == nil {
			return shared.ErrDuplicateItems
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}
		taxRate, err := s.taxRate(ctx, repos, product)
		if err != nil {
			return err
		}

		if err := product.Reserve(req.Quantity); err != nil {
			return err
		}
		if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
			return err
		}

		item, err := order.NewOrderItem(orderID, req.ProductID, req.Quantity, order.LineCost(product, req.Quantity, taxRate))
		if err != nil {
			return err
		}
		item.Customize(req.CustomizationImage, req.CustomizationText)
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}

		if err := s.recomputeTotal(ctx, repos, ord); err != nil {
			return err
		}

		r := ToOrderItemResponse(item)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// UpdateItemQuantity changes a line's quantity, recomputing its cost
// from the product's current pricing fields and applying the inventory
// delta under a row lock. A shrink restocks, a growth reserves.
func (s *OrderService) UpdateItemQuantity(ctx context.Context, orderID, productID uuid.UUID, req UpdateItemRequest) (*OrderItemResponse, error) {
	var response *OrderItemResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByKey(ctx, orderID, productID)
		if err != nil {
			return err
		}
		ord, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		taxRate, err := s.taxRate(ctx, repos, product)
		if err != nil {
			return err
		}

		delta := req.Quantity - item.Quantity
		switch {
		case delta > 0:
			if err := product.Reserve(delta); err != nil {
				return err
			}
		case delta < 0:
			if err := product.Restock(-delta); err != nil {
				return err
			}
		}
		if delta != 0 {
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		}

		if err := item.Reprice(req.Quantity, order.LineCost(product, req.Quantity, taxRate)); err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}

		if err := s.recomputeTotal(ctx, repos, ord); err != nil {
			return err
		}

		r := ToOrderItemResponse(item)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// RemoveItem deletes a line, restocking its full quantity.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, productID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByKey(ctx, orderID, productID)
		if err != nil {
			return err
		}
		ord, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID)
		switch {
		case err == nil:
			if err := product.Restock(item.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().SaveWithLock(ctx, product); err != nil {
				return err
			}
		case errors.Is(err, shared.ErrNotFound):
			// product gone from the catalog: nothing to restock
		default:
			return err
		}

		if err := repos.ItemRepo().Delete(ctx, orderID, productID); err != nil {
			return err
		}

		return s.recomputeTotal(ctx, repos, ord)
	})
}

// Delete removes an order and all its items, restocking each item's
// quantity. Restock problems are logged, not surfaced: the delete
// itself proceeds. NotFound only when the order itself is absent.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.OrderRepo().FindByID(ctx, orderID); err != nil {
			return err
		}

		items, err := repos.ItemRepo().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for i := range items {
			if err := s.restockBestEffort(ctx, repos, &items[i]); err != nil {
				s.logger.Warn("restock skipped during order delete",
					zap.String("order_id", orderID.String()),
					zap.String("product_id", items[i].ProductID.String()),
					zap.Error(err))
			}
		}

		if err := repos.ItemRepo().DeleteByOrder(ctx, orderID); err != nil {
			return err
		}
		return repos.OrderRepo().Delete(ctx, orderID)
	})
}

// Update applies generic field changes. The status label must be a
// member of the enum, but no transition ordering is enforced; callers
// needing lifecycle policy layer it on top.
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var response *OrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if req.Status != nil {
			if err := ord.SetStatus(*req.Status); err != nil {
				return err
			}
		}
		shippingChanged := false
		if req.ShippingPct != nil || req.FlatShipping != nil {
			pct := ord.ShippingPct
			flat := ord.FlatShipping
			if req.ShippingPct != nil {
				pct = *req.ShippingPct
			}
			if req.FlatShipping != nil {
				flat = *req.FlatShipping
			}
			if err := ord.SetShipping(pct, flat); err != nil {
				return err
			}
			shippingChanged = req.ShippingPct != nil
		}
		if req.AddressID != nil {
			ord.AddressID = req.AddressID
		}
		if req.TrackingID != nil {
			ord.SetTracking(*req.TrackingID)
		}

		if shippingChanged {
			if err := s.recomputeTotal(ctx, repos, ord); err != nil {
				return err
			}
		} else if err := repos.OrderRepo().SaveWithLock(ctx, ord); err != nil {
			return err
		}

		r := ToOrderResponse(ord)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ord.Items = items

	response := ToOrderResponse(ord)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	result, err := s.orderRepo.FindAll(ctx, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(result.Items), result.Total, nil
}

// ListByCustomer retrieves a customer's orders
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	result, err := s.orderRepo.FindByCustomer(ctx, customerID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(result.Items), result.Total, nil
}

// ListItems retrieves the items of an order
func (s *OrderService) ListItems(ctx context.Context, orderID uuid.UUID) ([]OrderItemResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderItemResponse, len(items))
	for i := range items {
		responses[i] = ToOrderItemResponse(&items[i])
	}
	return responses, nil
}

// GetItem retrieves a single order line
func (s *OrderService) GetItem(ctx context.Context, orderID, productID uuid.UUID) (*OrderItemResponse, error) {
	item, err := s.itemRepo.FindByKey(ctx, orderID, productID)
	if err != nil {
		return nil, err
	}
	response := ToOrderItemResponse(item)
	return &response, nil
}

// lockProducts fetches every referenced product under a row lock, in a
// stable id order so concurrent creates cannot deadlock. Unknown ids are
// simply absent from the map; the pricing pass reports them per line.
func (s *OrderService) lockProducts(ctx context.Context, repos TransactionalRepositories, items []CreateOrderItemInput) (map[uuid.UUID]*catalog.Product, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		if _, ok := seen[*item.ProductID]; ok {
			continue
		}
		seen[*item.ProductID] = struct{}{}
		ids = append(ids, *item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	products := make(map[uuid.UUID]*catalog.Product, len(ids))
	for _, id := range ids {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

func (s *OrderService) fetchTaxes(ctx context.Context, repos TransactionalRepositories, products map[uuid.UUID]*catalog.Product) (map[uuid.UUID]*catalog.Tax, error) {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, product := range products {
		if product.TaxID == nil {
			continue
		}
		if _, ok := seen[*product.TaxID]; ok {
			continue
		}
		seen[*product.TaxID] = struct{}{}
		ids = append(ids, *product.TaxID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*catalog.Tax{}, nil
	}
	return repos.TaxRepo().FindByIDs(ctx, ids)
}

func (s *OrderService) taxRate(ctx context.Context, repos TransactionalRepositories, product *catalog.Product) (int, error) {
	if product.TaxID == nil {
		return 0, nil
	}
	tax, err := repos.TaxRepo().FindByID(ctx, *product.TaxID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return tax.Rate, nil
}

// recomputeTotal resums the order's persisted lines and applies the
// order-level shipping policy, keeping the stored total consistent with
// the items after any line mutation.
func (s *OrderService) recomputeTotal(ctx context.Context, repos TransactionalRepositories, ord *order.Order) error {
	items, err := repos.ItemRepo().FindByOrder(ctx, ord.ID)
	if err != nil {
		return err
	}

	total := valueobject.ZeroINR()
	for i := range items {
		total = total.MustAdd(items[i].Cost)
	}

	ord.SetTotal(s.shippingPolicy(ctx, ord.ShippingPct, ord.FlatShipping).Apply(total))
	return repos.OrderRepo().SaveWithLock(ctx, ord)
}

// shippingPolicy combines the order-level shipping rate with the site's
// flat-shipping settings. The site switch enables the override for all
// orders; the order's own flag opts a single order in. A missing or
// unreadable site record leaves the percentage rate as-is.
func (s *OrderService) shippingPolicy(ctx context.Context, pct int, flat bool) order.ShippingPolicy {
	policy := order.ShippingPolicy{Pct: pct, Flat: flat}
	meta, err := s.metaRepo.Get(ctx)
	if err != nil {
		return policy
	}
	if meta.FlatShipping {
		policy.Flat = true
		policy.FlatOver = meta.FlatShippingOver
	}
	return policy
}

func (s *OrderService) restockBestEffort(ctx context.Context, repos TransactionalRepositories, item *order.OrderItem) error {
	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, item.ProductID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := product.Restock(item.Quantity); err != nil {
		return err
	}
	return repos.ProductRepo().SaveWithLock(ctx, product)
}

func toSharedFilter(filter OrderListFilter) shared.Filter {
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
	if filter.Status != nil {
		f.Filters["status"] = string(*filter.Status)
	}
	return f
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
