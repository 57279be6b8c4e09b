package pricing

import (
	"sort"

	"distribuidora-backoffice/models"
)

// Reconcile builds the preparation view of an order: the originally
// requested quantities (from the source order request) against the
// quantities currently on the order.
//
// Rules:
//   - Every product on the order or on the request produces one line.
//   - RequestedQuantity is taken from the order request, 0 when the product
//     was not requested.
//   - ActualQuantity is the order's current quantity when the product is
//     already on the order; otherwise it defaults to the requested quantity.
//     A product added during preparation with no quantity yet defaults to 1.
//   - A product absent from the original request is flagged
//     IsOriginalFromOrder=false.
//   - Weight is only carried for kilo products.
func Reconcile(requestItems []models.OrderRequestItem, orderItems []models.OrderProductItem, products map[int64]*models.Product) []models.PreparationLine {
	requested := make(map[int64]int, len(requestItems))
	for _, ri := range requestItems {
		requested[ri.ProductID] += ri.Quantity
	}

	lines := make([]models.PreparationLine, 0, len(orderItems))
	seen := make(map[int64]bool, len(orderItems))

	for _, oi := range orderItems {
		if seen[oi.ProductID] {
			continue
		}
		seen[oi.ProductID] = true

		line := models.PreparationLine{
			ProductID:         oi.ProductID,
			RequestedQuantity: requested[oi.ProductID],
			ActualQuantity:    oi.Quantity,
		}
		_, line.IsOriginalFromOrder = requested[oi.ProductID]
		if line.ActualQuantity <= 0 {
			if line.IsOriginalFromOrder {
				line.ActualQuantity = line.RequestedQuantity
			} else {
				line.ActualQuantity = 1
			}
		}

		if p, ok := products[oi.ProductID]; ok {
			line.ProductName = p.Name
			line.UnitType = p.UnitType
			line.Stock = p.Stock
			line.AvailableStock = p.AvailableStock
			if p.UnitType == models.UnitTypeKilo {
				line.Weight = oi.Weight
			}
		}
		lines = append(lines, line)
	}

	// Requested products the order does not carry yet still show up,
	// defaulted to the requested quantity.
	for _, ri := range requestItems {
		if seen[ri.ProductID] {
			continue
		}
		seen[ri.ProductID] = true

		line := models.PreparationLine{
			ProductID:           ri.ProductID,
			RequestedQuantity:   ri.Quantity,
			ActualQuantity:      ri.Quantity,
			IsOriginalFromOrder: true,
		}
		if p, ok := products[ri.ProductID]; ok {
			line.ProductName = p.Name
			line.UnitType = p.UnitType
			line.Stock = p.Stock
			line.AvailableStock = p.AvailableStock
		}
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// ValidatePreparation checks a preparation before submit.
// Structural problems return a *ValidationError; lines whose actual
// quantity exceeds available stock are enumerated in a *StockExceededError.
// Any returned error blocks submission.
func ValidatePreparation(lines []models.PreparationLine, crates int) error {
	if len(lines) == 0 {
		return &ValidationError{Field: "lines", Message: "at least one line is required"}
	}
	if crates < 1 {
		return &ValidationError{Field: "crates", Message: "crates must be a positive integer"}
	}

	var exceeded []StockExceededLine
	for _, l := range lines {
		if l.ActualQuantity < 1 {
			return &ValidationError{Field: "quantity", Message: "line quantities must be positive"}
		}
		if l.ActualQuantity > l.AvailableStock {
			exceeded = append(exceeded, StockExceededLine{
				ProductID:      l.ProductID,
				Requested:      l.ActualQuantity,
				AvailableStock: l.AvailableStock,
			})
		}
	}
	if len(exceeded) > 0 {
		return &StockExceededError{Lines: exceeded}
	}
	return nil
}

// SubmitPreparation emits exactly the {productId, quantity, weight?} tuples
// for the lines present in the final list. Removed lines are simply absent.
// Weight is only emitted for kilo products.
func SubmitPreparation(lines []models.PreparationLine) []models.PreparationLineInput {
	out := make([]models.PreparationLineInput, 0, len(lines))
	for _, l := range lines {
		in := models.PreparationLineInput{
			ProductID: l.ProductID,
			Quantity:  l.ActualQuantity,
		}
		if l.UnitType == models.UnitTypeKilo {
			in.Weight = l.Weight
		}
		out = append(out, in)
	}
	return out
}
