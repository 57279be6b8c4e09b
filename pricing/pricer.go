package pricing

import (
	"distribuidora-backoffice/models"
)

// PriceLine computes the pricing breakdown for a single order line.
//
// While the order is pending, item.UnitPrice is the list price and the
// caller must supply the live resolved discount percentage: pending orders
// re-evaluate discounts dynamically.
//
// Once the order is confirmed or cancelled, item.UnitPrice already has the
// historical discount folded in and item.Discount records the percentage;
// the pre-discount price is reconstructed from those. A stored 100% discount
// cannot be reconstructed and yields ErrFullDiscount.
func PriceLine(item *models.OrderProductItem, orderStatus models.Status, resolvedDiscountPercent float64) (models.LinePrice, error) {
	lp := models.LinePrice{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}

	if orderStatus == models.StatusPending {
		lp.DiscountPercent = resolvedDiscountPercent
		lp.UnitPriceBeforeDiscount = item.UnitPrice
		lp.EffectiveUnitPrice = item.UnitPrice * (1 - resolvedDiscountPercent/100)
	} else {
		if item.Discount >= 100 {
			return models.LinePrice{}, ErrFullDiscount
		}
		lp.DiscountPercent = item.Discount
		lp.EffectiveUnitPrice = item.UnitPrice
		lp.UnitPriceBeforeDiscount = item.UnitPrice / (1 - item.Discount/100)
	}

	qty := float64(item.Quantity)
	lp.LineSubtotal = qty * lp.UnitPriceBeforeDiscount
	lp.LineDiscountAmount = qty * (lp.UnitPriceBeforeDiscount - lp.EffectiveUnitPrice)
	lp.LineTotal = lp.LineSubtotal - lp.LineDiscountAmount
	return lp, nil
}

// OrderTotals sums line breakdowns into order-level subtotal, discount and
// total. Total stays equal to the sum of quantity times effective unit price
// across lines, within floating point tolerance.
func OrderTotals(lines []models.LinePrice) models.OrderPricing {
	pricing := models.OrderPricing{Lines: lines}
	for _, l := range lines {
		pricing.Subtotal += l.LineSubtotal
		pricing.DiscountTotal += l.LineDiscountAmount
	}
	pricing.Total = pricing.Subtotal - pricing.DiscountTotal
	return pricing
}
