package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
)

// fakeOrderRepo serves a single stored order
type fakeOrderRepo struct {
	order *models.Order
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if r.order == nil || r.order.ID != id {
		return nil, fmt.Errorf("order with id %d not found", id)
	}
	copied := *r.order
	return &copied, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *models.OrderFilterParams, page, pageSize int) ([]models.OrderListItem, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeOrderRepo) CreateFromRequest(ctx context.Context, orderRequestID int64, userID int64) (*models.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeOrderRepo) Prepare(ctx context.Context, id int64, lines []models.PreparationLineInput, crates int, observations string) (*models.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeOrderRepo) Confirm(ctx context.Context, id int64) (*models.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeOrderRepo) Cancel(ctx context.Context, id int64) (*models.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

type fakeOrderRequestRepo struct{}

func (r *fakeOrderRequestRepo) GetByID(ctx context.Context, id int64) (*models.OrderRequest, error) {
	return nil, fmt.Errorf("order request with id %d not found", id)
}

type fakeProductLookup struct{}

func (r *fakeProductLookup) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductLookup) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductLookup) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductLookup) GetByInternalCode(ctx context.Context, code string) (*models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductLookup) Filter(ctx context.Context, params *models.ProductFilterParams, page, pageSize int) ([]models.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeProductLookup) SetImage(ctx context.Context, id int64, driveFileID, imageURL string) error {
	return fmt.Errorf("not implemented")
}

func (r *fakeProductLookup) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	return false, fmt.Errorf("not implemented")
}

// fakeDiscountSource backs the resolver without a database
type fakeDiscountSource struct {
	product    *models.Product
	client     *models.Client
	candidates []models.Discount
	listErr    error
}

func (s *fakeDiscountSource) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.product, nil
}

func (s *fakeDiscountSource) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	return s.client, nil
}

func (s *fakeDiscountSource) ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error) {
	return s.candidates, s.listErr
}

func pendingOrderFixture() *models.Order {
	return &models.Order{
		ID:       31,
		ClientID: 8,
		Status:   models.StatusPending,
		Items: []models.OrderProductItem{
			{ID: 1, OrderID: 31, ProductID: 12, Quantity: 3, UnitPrice: 100},
		},
	}
}

func TestGetPendingOrderAppliesQuantityQualifiedDiscount(t *testing.T) {
	// A 20% rule needing 10 units must not mask the 10% rule the
	// confirmation would freeze for a 3-unit line.
	bulky := models.Discount{
		ID: 1, Percentage: 20, ProductQuantity: 10,
		ExpirationDate: time.Now().Add(30 * 24 * time.Hour),
		Status:         models.DiscountAvailable,
	}
	flat := models.Discount{
		ID: 2, Percentage: 10,
		ExpirationDate: time.Now().Add(30 * 24 * time.Hour),
		Status:         models.DiscountAvailable,
	}
	source := &fakeDiscountSource{
		product:    &models.Product{ID: 12},
		client:     &models.Client{ID: 8},
		candidates: []models.Discount{bulky, flat},
	}

	ctrl := NewOrderController(
		&fakeOrderRepo{order: pendingOrderFixture()},
		&fakeOrderRequestRepo{},
		&fakeProductLookup{},
		pricing.NewResolver(source, nil),
	)

	rec := httptest.NewRecorder()
	ctrl.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/31", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PricedOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pricing.Lines, 1)

	line := resp.Pricing.Lines[0]
	assert.InDelta(t, 10.0, line.DiscountPercent, 1e-9)
	assert.InDelta(t, 270.0, line.LineTotal, 1e-9)
	assert.InDelta(t, 270.0, resp.Pricing.Total, 1e-9)
}

func TestGetPendingOrderSurfacesDiscountLookupFailure(t *testing.T) {
	source := &fakeDiscountSource{
		product: &models.Product{ID: 12},
		client:  &models.Client{ID: 8},
		listErr: fmt.Errorf("connection refused"),
	}

	ctrl := NewOrderController(
		&fakeOrderRepo{order: pendingOrderFixture()},
		&fakeOrderRequestRepo{},
		&fakeProductLookup{},
		pricing.NewResolver(source, nil),
	)

	rec := httptest.NewRecorder()
	ctrl.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/31", nil))

	// A failed lookup must not come back as a 200 with list prices
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetConfirmedOrderUsesFrozenPrices(t *testing.T) {
	confirmedAt := time.Now()
	order := &models.Order{
		ID:          31,
		ClientID:    8,
		Status:      models.StatusConfirmed,
		ConfirmedAt: &confirmedAt,
		Items: []models.OrderProductItem{
			{ID: 1, OrderID: 31, ProductID: 12, Quantity: 3, UnitPrice: 90, Discount: 10},
		},
	}
	// The source would fail; confirmed orders must never consult it
	source := &fakeDiscountSource{listErr: fmt.Errorf("connection refused")}

	ctrl := NewOrderController(
		&fakeOrderRepo{order: order},
		&fakeOrderRequestRepo{},
		&fakeProductLookup{},
		pricing.NewResolver(source, nil),
	)

	rec := httptest.NewRecorder()
	ctrl.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/31", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PricedOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pricing.Lines, 1)
	assert.InDelta(t, 100.0, resp.Pricing.Lines[0].UnitPriceBeforeDiscount, 1e-9)
	assert.InDelta(t, 270.0, resp.Pricing.Total, 1e-9)
}
