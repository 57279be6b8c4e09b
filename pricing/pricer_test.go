package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribuidora-backoffice/models"
)

func TestPriceLinePendingWithDiscount(t *testing.T) {
	item := &models.OrderProductItem{ProductID: 1, Quantity: 3, UnitPrice: 100}

	lp, err := PriceLine(item, models.StatusPending, 10)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, lp.UnitPriceBeforeDiscount, 1e-9)
	assert.InDelta(t, 90.0, lp.EffectiveUnitPrice, 1e-9)
	assert.InDelta(t, 10.0, lp.DiscountPercent, 1e-9)
	assert.InDelta(t, 300.0, lp.LineSubtotal, 1e-9)
	assert.InDelta(t, 30.0, lp.LineDiscountAmount, 1e-9)
	assert.InDelta(t, 270.0, lp.LineTotal, 1e-9)
}

func TestPriceLinePendingWithoutDiscount(t *testing.T) {
	item := &models.OrderProductItem{ProductID: 1, Quantity: 2, UnitPrice: 50}

	lp, err := PriceLine(item, models.StatusPending, 0)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, lp.EffectiveUnitPrice, 1e-9)
	assert.InDelta(t, 100.0, lp.LineTotal, 1e-9)
	assert.InDelta(t, 0.0, lp.LineDiscountAmount, 1e-9)
}

func TestPriceLineConfirmedReconstructsListPrice(t *testing.T) {
	// A confirmed line stores the discounted price and the percentage;
	// the pre-discount price is reconstructed: 90 / (1 - 0.10) = 100.
	item := &models.OrderProductItem{ProductID: 1, Quantity: 3, UnitPrice: 90, Discount: 10}

	lp, err := PriceLine(item, models.StatusConfirmed, 0)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, lp.UnitPriceBeforeDiscount, 1e-9)
	assert.InDelta(t, 90.0, lp.EffectiveUnitPrice, 1e-9)
	assert.InDelta(t, 10.0, lp.DiscountPercent, 1e-9)
	assert.InDelta(t, 300.0, lp.LineSubtotal, 1e-9)
	assert.InDelta(t, 270.0, lp.LineTotal, 1e-9)
}

func TestPriceLineConfirmedIgnoresResolvedPercent(t *testing.T) {
	// The live resolved percentage must not affect historical prices
	item := &models.OrderProductItem{ProductID: 1, Quantity: 1, UnitPrice: 80, Discount: 20}

	lp, err := PriceLine(item, models.StatusConfirmed, 50)
	require.NoError(t, err)

	assert.InDelta(t, 20.0, lp.DiscountPercent, 1e-9)
	assert.InDelta(t, 100.0, lp.UnitPriceBeforeDiscount, 1e-9)
}

func TestPriceLineFullDiscountIsAnError(t *testing.T) {
	item := &models.OrderProductItem{ProductID: 1, Quantity: 1, UnitPrice: 0, Discount: 100}

	_, err := PriceLine(item, models.StatusConfirmed, 0)
	assert.ErrorIs(t, err, ErrFullDiscount)
}

func TestOrderTotals(t *testing.T) {
	lines := []models.LinePrice{
		{LineSubtotal: 300, LineDiscountAmount: 30, LineTotal: 270},
		{LineSubtotal: 100, LineDiscountAmount: 0, LineTotal: 100},
	}

	pricing := OrderTotals(lines)
	assert.InDelta(t, 400.0, pricing.Subtotal, 1e-9)
	assert.InDelta(t, 30.0, pricing.DiscountTotal, 1e-9)
	assert.InDelta(t, 370.0, pricing.Total, 1e-9)
	assert.Len(t, pricing.Lines, 2)
}

func TestOrderTotalsEmpty(t *testing.T) {
	pricing := OrderTotals(nil)
	assert.Zero(t, pricing.Subtotal)
	assert.Zero(t, pricing.Total)
}
