package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared/valueobject"
)

func buildProduct(t *testing.T, name string, featuredPrice, inventory, discountPct, shippingPct int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", decimal.NewFromInt(int64(featuredPrice)), featuredPrice, catalog.UnitPiece, nil)
	require.NoError(t, err)
	require.NoError(t, product.SetInventory(inventory))
	require.NoError(t, product.SetPricingRates(discountPct, shippingPct, false))
	return product
}

func intPtr(v int) *int            { return &v }
func idPtr(v uuid.UUID) *uuid.UUID { return &v }

func TestPriceOrder_WorkedExample(t *testing.T) {
	// price 100, qty 2 -> 200; -10% -> 180; +5% shipping -> 189; +8% tax -> 204.12
	product := buildProduct(t, "Teapot", 100, 10, 10, 5)
	tax, err := catalog.NewTax("GST", 8)
	require.NoError(t, err)
	taxID := tax.ID
	require.NoError(t, product.SetClassification(&taxID, nil, ""))

	quote := PriceOrder(
		[]ItemRequest{{ProductID: idPtr(product.ID), Quantity: intPtr(2)}},
		map[uuid.UUID]*catalog.Product{product.ID: product},
		map[uuid.UUID]*catalog.Tax{tax.ID: tax},
		ShippingPolicy{},
	)

	require.True(t, quote.OK(), "unexpected errors: %v", quote.Errors)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, "204.12", quote.Items[0].Cost.StringFixed(2))
	assert.Equal(t, "204.12", quote.Total.StringFixed(2))
	assert.Equal(t, 10, product.Inventory, "pricing must not touch inventory")
}

func TestPriceOrder_OrderLevelShipping(t *testing.T) {
	product := buildProduct(t, "Teapot", 100, 10, 0, 0)

	quote := PriceOrder(
		[]ItemRequest{{ProductID: idPtr(product.ID), Quantity: intPtr(2)}},
		map[uuid.UUID]*catalog.Product{product.ID: product},
		nil,
		ShippingPolicy{Pct: 5},
	)

	require.True(t, quote.OK())
	assert.Equal(t, "200.00", quote.Items[0].Cost.StringFixed(2))
	assert.Equal(t, "210.00", quote.Total.StringFixed(2))
}

func TestPriceOrder_InsufficientInventory(t *testing.T) {
	product := buildProduct(t, "Teapot", 100, 10, 10, 5)

	quote := PriceOrder(
		[]ItemRequest{{ProductID: idPtr(product.ID), Quantity: intPtr(11)}},
		map[uuid.UUID]*catalog.Product{product.ID: product},
		nil,
		ShippingPolicy{},
	)

	require.False(t, quote.OK())
	assert.Equal(t, "Teapot has only 10 items left", quote.Errors["0"])
	assert.Empty(t, quote.Items)
	assert.Equal(t, "0.00", quote.Total.StringFixed(2))
	assert.Equal(t, 10, product.Inventory)
}

func TestPriceOrder_AccumulatesPerItemErrors(t *testing.T) {
	good := buildProduct(t, "Teapot", 100, 10, 0, 0)
	scarce := buildProduct(t, "Saucer", 50, 1, 0, 0)
	bare := buildProduct(t, "Cup", 40, 5, 0, 0)
	unknown := uuid.New()

	quote := PriceOrder(
		[]ItemRequest{
			{ProductID: idPtr(unknown), Quantity: intPtr(1)},
			{ProductID: idPtr(good.ID), Quantity: intPtr(2)},
			{ProductID: idPtr(scarce.ID), Quantity: intPtr(5)},
			{ProductID: idPtr(bare.ID)},
			{Quantity: intPtr(1)},
			{ProductID: idPtr(good.ID), Quantity: intPtr(1)},
		},
		map[uuid.UUID]*catalog.Product{good.ID: good, scarce.ID: scarce, bare.ID: bare},
		nil,
		ShippingPolicy{},
	)

	require.False(t, quote.OK())
	assert.Len(t, quote.Errors, 5)
	assert.Contains(t, quote.Errors["0"], "does not exist")
	assert.Equal(t, "Saucer has only 1 items left", quote.Errors["2"])
	assert.Equal(t, "Quantity is required", quote.Errors["3"])
	assert.Equal(t, "Product id is required", quote.Errors["4"])
	assert.Contains(t, quote.Errors["5"], "appears more than once")

	// the clean line is still priced
	require.Len(t, quote.Items, 1)
	assert.Equal(t, "200.00", quote.Total.StringFixed(2))
}

func TestPriceOrder_RejectsDuplicateProductLines(t *testing.T) {
	product := buildProduct(t, "Teapot", 100, 10, 0, 0)

	quote := PriceOrder(
		[]ItemRequest{
			{ProductID: idPtr(product.ID), Quantity: intPtr(3)},
			{ProductID: idPtr(product.ID), Quantity: intPtr(2)},
		},
		map[uuid.UUID]*catalog.Product{product.ID: product},
		nil,
		ShippingPolicy{},
	)

	require.False(t, quote.OK())
	assert.Contains(t, quote.Errors["1"], "appears more than once")
	require.Len(t, quote.Items, 1)
	assert.Equal(t, 3, quote.Items[0].Quantity)
}

func TestShippingPolicy_Apply(t *testing.T) {
	subtotal := valueobject.NewMoneyINRFromFloat(204.12)

	t.Run("percentage surcharge by default", func(t *testing.T) {
		total := ShippingPolicy{Pct: 10}.Apply(subtotal)
		assert.Equal(t, "224.53", total.Round(2).StringFixed(2))
	})

	t.Run("flat override waives the surcharge at the threshold", func(t *testing.T) {
		total := ShippingPolicy{Pct: 10, Flat: true, FlatOver: 200}.Apply(subtotal)
		assert.Equal(t, "204.12", total.StringFixed(2))
	})

	t.Run("subtotal below the threshold still pays", func(t *testing.T) {
		total := ShippingPolicy{Pct: 10, Flat: true, FlatOver: 500}.Apply(subtotal)
		assert.Equal(t, "224.53", total.Round(2).StringFixed(2))
	})

	t.Run("no rate means nothing to waive", func(t *testing.T) {
		total := ShippingPolicy{Flat: true, FlatOver: 0}.Apply(subtotal)
		assert.Equal(t, "204.12", total.StringFixed(2))
	})
}

func TestPriceOrder_EmptyRequest(t *testing.T) {
	quote := PriceOrder(nil, nil, nil, ShippingPolicy{})

	require.False(t, quote.OK())
	assert.Contains(t, quote.Errors, OrderErrorKey)
}

func TestPriceOrder_RejectsNonPositiveQuantity(t *testing.T) {
	product := buildProduct(t, "Teapot", 100, 10, 0, 0)

	quote := PriceOrder(
		[]ItemRequest{{ProductID: idPtr(product.ID), Quantity: intPtr(0)}},
		map[uuid.UUID]*catalog.Product{product.ID: product},
		nil,
		ShippingPolicy{},
	)

	require.False(t, quote.OK())
	assert.Equal(t, "Quantity must be a positive integer", quote.Errors["0"])
}

func TestLineCost_NoAdjustments(t *testing.T) {
	product := buildProduct(t, "Teapot", 100, 10, 0, 0)

	cost := LineCost(product, 3, 0)

	assert.Equal(t, "300.00", cost.StringFixed(2))
}

func TestLineCost_MissingTaxRecordMeansNoTax(t *testing.T) {
	product := buildProduct(t, "Teapot", 100, 10, 0, 0)
	orphanTax := uuid.New()
	require.NoError(t, product.SetClassification(&orphanTax, nil, ""))

	quote := PriceOrder(
		[]ItemRequest{{ProductID: idPtr(product.ID), Quantity: intPtr(1)}},
		map[uuid.UUID]*catalog.Product{product.ID: product},
		map[uuid.UUID]*catalog.Tax{},
		ShippingPolicy{},
	)

	require.True(t, quote.OK())
	assert.Equal(t, "100.00", quote.Total.StringFixed(2))
}
