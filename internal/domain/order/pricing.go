package order

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared/valueobject"
)

// OrderErrorKey is the error-map key for request-shape problems that are
// not attributable to a single line.
const OrderErrorKey = "order"

// ItemRequest is one requested line as it arrives from the caller.
// Pointers distinguish absent fields from zero values.
type ItemRequest struct {
	ProductID          *uuid.UUID
	Quantity           *int
	CustomizationImage string
	CustomizationText  string
}

// PricedItem is a validated line with its computed cost.
type PricedItem struct {
	ProductID          uuid.UUID
	Quantity           int
	Cost               valueobject.Money
	CustomizationImage string
	CustomizationText  string
}

// ShippingPolicy is the order-level shipping configuration: the
// percentage surcharge plus the site's flat-shipping override.
type ShippingPolicy struct {
	// Pct is the percentage surcharge applied to the order subtotal.
	Pct int
	// Flat enables the flat-shipping override.
	Flat bool
	// FlatOver is the subtotal at or above which the override kicks in.
	FlatOver int
}

// Apply adds the order-level shipping to a subtotal. With the flat
// override active and the subtotal at or above the threshold, the
// percentage surcharge is waived and the subtotal ships as-is.
func (p ShippingPolicy) Apply(subtotal valueobject.Money) valueobject.Money {
	if p.Pct <= 0 {
		return subtotal
	}
	if p.Flat && subtotal.Amount().GreaterThanOrEqual(decimal.NewFromInt(int64(p.FlatOver))) {
		return subtotal
	}
	return subtotal.ApplySurcharge(decimal.NewFromInt(int64(p.Pct)))
}

// Quote is the outcome of pricing a set of requested lines. Errors is
// keyed by the zero-based index of the failing line, plus OrderErrorKey
// for request-shape problems. A non-empty Errors means the whole order
// must be rejected; Items and Total then cover only the clean lines and
// are advisory.
type Quote struct {
	Items  []PricedItem
	Total  valueobject.Money
	Errors map[string]string
}

// OK reports whether every line priced cleanly.
func (q Quote) OK() bool {
	return len(q.Errors) == 0
}

// PriceOrder validates and prices the requested lines against the given
// product and tax lookups. Every line is checked even after an earlier
// one fails, so the caller gets the complete error report in one pass.
// Lines are keyed by (order, product), so a product may appear on at
// most one line. The order-level shipping policy is applied once to the
// aggregate, after the per-line figures. The routine reads the lookups
// but never writes: inventory debits belong to the lifecycle service.
func PriceOrder(items []ItemRequest, products map[uuid.UUID]*catalog.Product, taxes map[uuid.UUID]*catalog.Tax, shipping ShippingPolicy) Quote {
	quote := Quote{Errors: make(map[string]string)}

	if len(items) == 0 {
		quote.Errors[OrderErrorKey] = "Order must contain at least one item"
		quote.Total = valueobject.ZeroINR()
		return quote
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	total := valueobject.ZeroINR()
	for index, item := range items {
		key := strconv.Itoa(index)

		if item.ProductID == nil {
			quote.Errors[key] = "Product id is required"
			continue
		}
		if _, dup := seen[*item.ProductID]; dup {
			quote.Errors[key] = fmt.Sprintf("Product with id %s appears more than once", item.ProductID)
			continue
		}
		seen[*item.ProductID] = struct{}{}
		if item.Quantity == nil {
			quote.Errors[key] = "Quantity is required"
			continue
		}
		if *item.Quantity <= 0 {
			quote.Errors[key] = "Quantity must be a positive integer"
			continue
		}

		product, ok := products[*item.ProductID]
		if !ok {
			quote.Errors[key] = fmt.Sprintf("Product with id %s does not exist", item.ProductID)
			continue
		}
		if *item.Quantity > product.Inventory {
			quote.Errors[key] = fmt.Sprintf("%s has only %d items left", product.Name, product.Inventory)
			continue
		}

		cost := LineCost(product, *item.Quantity, taxRateFor(product, taxes))
		quote.Items = append(quote.Items, PricedItem{
			ProductID:          product.ID,
			Quantity:           *item.Quantity,
			Cost:               cost,
			CustomizationImage: item.CustomizationImage,
			CustomizationText:  item.CustomizationText,
		})
		total = total.MustAdd(cost)
	}

	quote.Total = shipping.Apply(total).Round(2)

	if len(quote.Errors) == 0 {
		quote.Errors = nil
	}
	return quote
}

// LineCost computes one line's cost from the product's current pricing
// fields: unit price times quantity, minus the discount percentage, plus
// the shipping percentage, plus the tax percentage. Rounded to 2 places.
func LineCost(product *catalog.Product, quantity int, taxRate int) valueobject.Money {
	cost := valueobject.NewMoneyINR(decimal.NewFromInt(int64(product.FeaturedPrice))).
		MultiplyByInt(int64(quantity))

	if product.DiscountPct > 0 {
		cost = cost.ApplyDiscount(decimal.NewFromInt(int64(product.DiscountPct)))
	}
	if product.ShippingPct > 0 {
		cost = cost.ApplySurcharge(decimal.NewFromInt(int64(product.ShippingPct)))
	}
	if taxRate > 0 {
		cost = cost.ApplySurcharge(decimal.NewFromInt(int64(taxRate)))
	}

	return cost.Round(2)
}

func taxRateFor(product *catalog.Product, taxes map[uuid.UUID]*catalog.Tax) int {
	if product.TaxID == nil {
		return 0
	}
	if tax, ok := taxes[*product.TaxID]; ok {
		return tax.Rate
	}
	return 0
}
