package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribuidora-backoffice/models"
)

func reconcileProducts() map[int64]*models.Product {
	return map[int64]*models.Product{
		1: {ID: 1, Name: "Harina 000 x 1kg", UnitType: models.UnitTypeUnit, Stock: 100, AvailableStock: 80},
		2: {ID: 2, Name: "Queso cremoso", UnitType: models.UnitTypeKilo, Stock: 40, AvailableStock: 35},
		3: {ID: 3, Name: "Aceite girasol 1.5L", UnitType: models.UnitTypeUnit, Stock: 60, AvailableStock: 60},
	}
}

func TestReconcileMatchesRequestedAgainstActual(t *testing.T) {
	requested := []models.OrderRequestItem{
		{ProductID: 1, Quantity: 5},
		{ProductID: 2, Quantity: 2},
	}
	weight := 3.75
	onOrder := []models.OrderProductItem{
		{ProductID: 1, Quantity: 4},
		{ProductID: 2, Quantity: 2, Weight: &weight},
	}

	lines := Reconcile(requested, onOrder, reconcileProducts())
	require.Len(t, lines, 2)

	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, 5, lines[0].RequestedQuantity)
	assert.Equal(t, 4, lines[0].ActualQuantity)
	assert.True(t, lines[0].IsOriginalFromOrder)
	assert.Nil(t, lines[0].Weight)

	assert.Equal(t, int64(2), lines[1].ProductID)
	assert.Equal(t, 2, lines[1].RequestedQuantity)
	assert.Equal(t, 2, lines[1].ActualQuantity)
	require.NotNil(t, lines[1].Weight)
	assert.InDelta(t, 3.75, *lines[1].Weight, 1e-9)
}

func TestReconcileRequestedButNotOnOrder(t *testing.T) {
	requested := []models.OrderRequestItem{
		{ProductID: 1, Quantity: 5},
		{ProductID: 3, Quantity: 2},
	}
	onOrder := []models.OrderProductItem{
		{ProductID: 1, Quantity: 5},
	}

	lines := Reconcile(requested, onOrder, reconcileProducts())
	require.Len(t, lines, 2)

	// The missing product still shows up, defaulted to the requested quantity
	assert.Equal(t, int64(3), lines[1].ProductID)
	assert.Equal(t, 2, lines[1].RequestedQuantity)
	assert.Equal(t, 2, lines[1].ActualQuantity)
	assert.True(t, lines[1].IsOriginalFromOrder)
}

func TestReconcileProductAddedDuringPreparation(t *testing.T) {
	requested := []models.OrderRequestItem{
		{ProductID: 1, Quantity: 5},
	}
	onOrder := []models.OrderProductItem{
		{ProductID: 1, Quantity: 5},
		{ProductID: 3, Quantity: 2},
	}

	lines := Reconcile(requested, onOrder, reconcileProducts())
	require.Len(t, lines, 2)

	assert.Equal(t, int64(3), lines[1].ProductID)
	assert.Equal(t, 0, lines[1].RequestedQuantity)
	assert.Equal(t, 2, lines[1].ActualQuantity)
	assert.False(t, lines[1].IsOriginalFromOrder)
}

func TestReconcileAddedProductDefaultsToOne(t *testing.T) {
	onOrder := []models.OrderProductItem{
		{ProductID: 3, Quantity: 0},
	}

	lines := Reconcile(nil, onOrder, reconcileProducts())
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].ActualQuantity)
	assert.False(t, lines[0].IsOriginalFromOrder)
}

func TestReconcileCarriesProductInfo(t *testing.T) {
	onOrder := []models.OrderProductItem{
		{ProductID: 1, Quantity: 2},
	}

	lines := Reconcile(nil, onOrder, reconcileProducts())
	require.Len(t, lines, 1)
	assert.Equal(t, "Harina 000 x 1kg", lines[0].ProductName)
	assert.Equal(t, models.UnitTypeUnit, lines[0].UnitType)
	assert.Equal(t, 100, lines[0].Stock)
	assert.Equal(t, 80, lines[0].AvailableStock)
}

func TestReconcileSortsByProductID(t *testing.T) {
	requested := []models.OrderRequestItem{
		{ProductID: 3, Quantity: 1},
	}
	onOrder := []models.OrderProductItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 1},
	}

	lines := Reconcile(requested, onOrder, reconcileProducts())
	require.Len(t, lines, 3)
	assert.Equal(t, int64(1), lines[0].ProductID)
	assert.Equal(t, int64(2), lines[1].ProductID)
	assert.Equal(t, int64(3), lines[2].ProductID)
}

func TestValidatePreparationRejectsEmptyLines(t *testing.T) {
	err := ValidatePreparation(nil, 1)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "lines", ve.Field)
}

func TestValidatePreparationRejectsNonPositiveCrates(t *testing.T) {
	lines := []models.PreparationLine{{ProductID: 1, ActualQuantity: 1, AvailableStock: 10}}

	for _, crates := range []int{0, -1} {
		err := ValidatePreparation(lines, crates)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "crates", ve.Field)
	}
}

func TestValidatePreparationRejectsNonPositiveQuantities(t *testing.T) {
	lines := []models.PreparationLine{{ProductID: 1, ActualQuantity: 0, AvailableStock: 10}}

	err := ValidatePreparation(lines, 1)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)
}

func TestValidatePreparationEnumeratesExceededLines(t *testing.T) {
	lines := []models.PreparationLine{
		{ProductID: 1, ActualQuantity: 5, AvailableStock: 3},
		{ProductID: 2, ActualQuantity: 2, AvailableStock: 10},
		{ProductID: 3, ActualQuantity: 8, AvailableStock: 1},
	}

	err := ValidatePreparation(lines, 2)
	var se *StockExceededError
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Lines, 2)

	assert.Equal(t, int64(1), se.Lines[0].ProductID)
	assert.Equal(t, 5, se.Lines[0].Requested)
	assert.Equal(t, 3, se.Lines[0].AvailableStock)
	assert.Equal(t, int64(3), se.Lines[1].ProductID)
}

func TestValidatePreparationAccepts(t *testing.T) {
	lines := []models.PreparationLine{
		{ProductID: 1, ActualQuantity: 5, AvailableStock: 5},
		{ProductID: 2, ActualQuantity: 1, AvailableStock: 10},
	}
	assert.NoError(t, ValidatePreparation(lines, 1))
}

func TestSubmitPreparationEmitsTuples(t *testing.T) {
	weight := 2.5
	lines := []models.PreparationLine{
		{ProductID: 1, UnitType: models.UnitTypeUnit, ActualQuantity: 5, Weight: &weight},
		{ProductID: 2, UnitType: models.UnitTypeKilo, ActualQuantity: 2, Weight: &weight},
	}

	out := SubmitPreparation(lines)
	require.Len(t, out, 2)

	assert.Equal(t, int64(1), out[0].ProductID)
	assert.Equal(t, 5, out[0].Quantity)
	// Weight only travels for kilo products
	assert.Nil(t, out[0].Weight)

	assert.Equal(t, int64(2), out[1].ProductID)
	require.NotNil(t, out[1].Weight)
	assert.InDelta(t, 2.5, *out[1].Weight, 1e-9)
}

func TestSubmitPreparationOmitsRemovedLines(t *testing.T) {
	lines := []models.PreparationLine{
		{ProductID: 7, UnitType: models.UnitTypeUnit, ActualQuantity: 3},
	}

	out := SubmitPreparation(lines)
	require.Len(t, out, 1)
	assert.Equal(t, int64(7), out[0].ProductID)
}
