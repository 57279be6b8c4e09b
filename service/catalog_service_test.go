package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
)

type fakeCatalogRepo struct {
	items []models.CatalogItem
}

func (r *fakeCatalogRepo) GetCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	out := make([]models.CatalogItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

type fakeClientRepo struct {
	client *models.Client
}

func (r *fakeClientRepo) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeClientRepo) Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.Client, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	if r.client == nil || r.client.ID != id {
		return nil, fmt.Errorf("client with id %d not found", id)
	}
	return r.client, nil
}

func (r *fakeClientRepo) Filter(ctx context.Context, params *models.ClientFilterParams, page, pageSize int) ([]models.Client, error) {
	return nil, fmt.Errorf("not implemented")
}

// fakeCatalogSource backs the resolver for catalog pricing
type fakeCatalogSource struct {
	product    *models.Product
	client     *models.Client
	candidates []models.Discount
	listErr    error
}

func (s *fakeCatalogSource) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.product, nil
}

func (s *fakeCatalogSource) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	return s.client, nil
}

func (s *fakeCatalogSource) ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error) {
	return s.candidates, s.listErr
}

func TestGetClientCatalogAppliesDiscounts(t *testing.T) {
	source := &fakeCatalogSource{
		product: &models.Product{ID: 1},
		client:  &models.Client{ID: 8},
		candidates: []models.Discount{{
			ID: 7, Percentage: 10,
			ExpirationDate: time.Now().Add(30 * 24 * time.Hour),
			Status:         models.DiscountAvailable,
		}},
	}
	s := NewCatalogService(
		&fakeCatalogRepo{items: []models.CatalogItem{
			{ID: 1, Name: "Harina 000 x 1kg", ListPrice: 1000, EffectivePrice: 1000},
		}},
		&fakeClientRepo{client: &models.Client{ID: 8, Name: "Almacén Don Pedro"}},
		pricing.NewResolver(source, nil),
		"http://localhost:8080",
	)

	items, err := s.GetClientCatalog(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 10.0, items[0].DiscountPercent, 1e-9)
	assert.InDelta(t, 900.0, items[0].EffectivePrice, 1e-9)
}

func TestGetClientCatalogSurfacesDiscountLookupFailure(t *testing.T) {
	source := &fakeCatalogSource{
		product: &models.Product{ID: 1},
		client:  &models.Client{ID: 8},
		listErr: fmt.Errorf("connection refused"),
	}
	s := NewCatalogService(
		&fakeCatalogRepo{items: []models.CatalogItem{
			{ID: 1, Name: "Harina 000 x 1kg", ListPrice: 1000, EffectivePrice: 1000},
		}},
		&fakeClientRepo{client: &models.Client{ID: 8, Name: "Almacén Don Pedro"}},
		pricing.NewResolver(source, nil),
		"http://localhost:8080",
	)

	// A failed lookup must not fall back to undiscounted list prices
	_, err := s.GetClientCatalog(context.Background(), 8)
	assert.Error(t, err)
}

func TestGetClientCatalogUnknownClient(t *testing.T) {
	s := NewCatalogService(
		&fakeCatalogRepo{},
		&fakeClientRepo{},
		pricing.NewResolver(&fakeCatalogSource{}, nil),
		"http://localhost:8080",
	)

	_, err := s.GetClientCatalog(context.Background(), 99)
	assert.Error(t, err)
}
