package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

func futureDate(days int) time.Time {
	return time.Now().Add(time.Duration(days) * 24 * time.Hour)
}

func availableDiscount(id int64, pct float64, expiration time.Time) models.Discount {
	return models.Discount{
		ID:             id,
		Percentage:     pct,
		ExpirationDate: expiration,
		Status:         models.DiscountAvailable,
	}
}

func TestAppliesScopeMatching(t *testing.T) {
	now := time.Now()
	product := &models.Product{ID: 12, BrandID: 3, SubCategoryID: 7}
	client := &models.Client{ID: 8, ZoneID: 4}

	cases := []struct {
		name     string
		discount models.Discount
		want     bool
	}{
		{
			name:     "all products all clients",
			discount: availableDiscount(1, 10, futureDate(30)),
			want:     true,
		},
		{
			name: "matching brand scope",
			discount: func() models.Discount {
				d := availableDiscount(2, 10, futureDate(30))
				d.ProductScope = models.ProductScope{Kind: models.ProductScopeBrand, BrandID: 3}
				return d
			}(),
			want: true,
		},
		{
			name: "non-matching brand scope",
			discount: func() models.Discount {
				d := availableDiscount(3, 10, futureDate(30))
				d.ProductScope = models.ProductScope{Kind: models.ProductScopeBrand, BrandID: 99}
				return d
			}(),
			want: false,
		},
		{
			name: "matching subcategory scope",
			discount: func() models.Discount {
				d := availableDiscount(4, 10, futureDate(30))
				d.ProductScope = models.ProductScope{Kind: models.ProductScopeSubCategory, SubCategoryID: 7}
				return d
			}(),
			want: true,
		},
		{
			name: "matching product list scope",
			discount: func() models.Discount {
				d := availableDiscount(5, 10, futureDate(30))
				d.ProductScope = models.ProductScope{Kind: models.ProductScopeList, ProductIDs: []int64{11, 12}}
				return d
			}(),
			want: true,
		},
		{
			name: "product not in list scope",
			discount: func() models.Discount {
				d := availableDiscount(6, 10, futureDate(30))
				d.ProductScope = models.ProductScope{Kind: models.ProductScopeList, ProductIDs: []int64{99}}
				return d
			}(),
			want: false,
		},
		{
			name: "matching zone scope",
			discount: func() models.Discount {
				d := availableDiscount(7, 10, futureDate(30))
				d.ClientScope = models.ClientScope{Kind: models.ClientScopeZone, ZoneID: 4}
				return d
			}(),
			want: true,
		},
		{
			name: "non-matching zone scope",
			discount: func() models.Discount {
				d := availableDiscount(8, 10, futureDate(30))
				d.ClientScope = models.ClientScope{Kind: models.ClientScopeZone, ZoneID: 99}
				return d
			}(),
			want: false,
		},
		{
			name: "client list scope",
			discount: func() models.Discount {
				d := availableDiscount(9, 10, futureDate(30))
				d.ClientScope = models.ClientScope{Kind: models.ClientScopeList, ClientIDs: []int64{8}}
				return d
			}(),
			want: true,
		},
		{
			name: "both scopes must match",
			discount: func() models.Discount {
				d := availableDiscount(10, 10, futureDate(30))
				d.ProductScope = models.ProductScope{Kind: models.ProductScopeBrand, BrandID: 3}
				d.ClientScope = models.ClientScope{Kind: models.ClientScopeZone, ZoneID: 99}
				return d
			}(),
			want: false,
		},
		{
			name:     "expired discount",
			discount: availableDiscount(11, 10, now.Add(-time.Hour)),
			want:     false,
		},
		{
			name: "closed discount",
			discount: func() models.Discount {
				d := availableDiscount(12, 10, futureDate(30))
				d.Status = models.DiscountClosed
				return d
			}(),
			want: false,
		},
		{
			name: "cancelled discount",
			discount: func() models.Discount {
				d := availableDiscount(13, 10, futureDate(30))
				d.Status = models.DiscountCancelled
				return d
			}(),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Applies(&tc.discount, product, client, now))
		})
	}
}

func TestBestDiscountPrefersHighestPercentage(t *testing.T) {
	product := &models.Product{ID: 1}
	client := &models.Client{ID: 1}
	candidates := []models.Discount{
		availableDiscount(1, 5, futureDate(30)),
		availableDiscount(2, 15, futureDate(30)),
		availableDiscount(3, 10, futureDate(30)),
	}

	best := BestDiscount(candidates, product, client, time.Now())
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestBestDiscountTieBreaksByEarliestExpiration(t *testing.T) {
	product := &models.Product{ID: 1}
	client := &models.Client{ID: 1}
	candidates := []models.Discount{
		availableDiscount(1, 10, futureDate(60)),
		availableDiscount(2, 10, futureDate(10)),
		availableDiscount(3, 10, futureDate(30)),
	}

	best := BestDiscount(candidates, product, client, time.Now())
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestBestDiscountTieBreaksByLowestID(t *testing.T) {
	product := &models.Product{ID: 1}
	client := &models.Client{ID: 1}
	expiration := futureDate(30)
	candidates := []models.Discount{
		availableDiscount(5, 10, expiration),
		availableDiscount(2, 10, expiration),
		availableDiscount(9, 10, expiration),
	}

	best := BestDiscount(candidates, product, client, time.Now())
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestBestDiscountNoneApplies(t *testing.T) {
	product := &models.Product{ID: 1, BrandID: 1}
	client := &models.Client{ID: 1}
	d := availableDiscount(1, 10, futureDate(30))
	d.ProductScope = models.ProductScope{Kind: models.ProductScopeBrand, BrandID: 99}

	assert.Nil(t, BestDiscount([]models.Discount{d}, product, client, time.Now()))
	assert.Nil(t, BestDiscount(nil, product, client, time.Now()))
}

func TestBestDiscountForQuantity(t *testing.T) {
	product := &models.Product{ID: 1}
	client := &models.Client{ID: 1}

	bulky := availableDiscount(1, 20, futureDate(30))
	bulky.ProductQuantity = 10
	small := availableDiscount(2, 5, futureDate(30))
	small.ProductQuantity = 1
	candidates := []models.Discount{bulky, small}

	// Below the bulk minimum only the small discount qualifies
	best := BestDiscountForQuantity(candidates, product, client, 3, time.Now())
	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)

	// At the minimum the bigger discount wins
	best = BestDiscountForQuantity(candidates, product, client, 10, time.Now())
	require.NotNil(t, best)
	assert.Equal(t, int64(1), best.ID)

	// Nothing qualifies below every minimum
	bulkyOnly := []models.Discount{bulky}
	assert.Nil(t, BestDiscountForQuantity(bulkyOnly, product, client, 2, time.Now()))
}

// fakeSource is an in-memory DiscountSource
type fakeSource struct {
	product    *models.Product
	client     *models.Client
	candidates []models.Discount
	listCalls  int
}

func (s *fakeSource) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.product, nil
}

func (s *fakeSource) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	return s.client, nil
}

func (s *fakeSource) ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error) {
	s.listCalls++
	return s.candidates, nil
}

// fakeCache is an in-memory CacheClient
type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.entries[key]
	if !ok {
		return "", db.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	return nil
}

func TestResolverCachesResult(t *testing.T) {
	source := &fakeSource{
		product:    &models.Product{ID: 1},
		client:     &models.Client{ID: 2},
		candidates: []models.Discount{availableDiscount(7, 10, futureDate(30))},
	}
	cache := newFakeCache()
	resolver := NewResolver(source, cache)
	ctx := context.Background()

	d, err := resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, 1, source.listCalls)

	// Second resolution is served from cache
	d, err = resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, 1, source.listCalls)
}

func TestResolverCachesEmptyResult(t *testing.T) {
	source := &fakeSource{
		product: &models.Product{ID: 1},
		client:  &models.Client{ID: 2},
	}
	cache := newFakeCache()
	resolver := NewResolver(source, cache)
	ctx := context.Background()

	d, err := resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, 1, source.listCalls)

	// "no discount" is cached too, distinct from a never-cached pair
	d, err = resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, 1, source.listCalls)
}

func TestResolverWithoutCache(t *testing.T) {
	source := &fakeSource{
		product:    &models.Product{ID: 1},
		client:     &models.Client{ID: 2},
		candidates: []models.Discount{availableDiscount(7, 10, futureDate(30))},
	}
	resolver := NewResolver(source, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := resolver.Resolve(ctx, 1, 2)
		require.NoError(t, err)
		require.NotNil(t, d)
	}
	assert.Equal(t, 3, source.listCalls)
}

func TestResolveForQuantityMatchesConfirmationSelection(t *testing.T) {
	// A high-percentage rule with an unmet minimum must not mask a
	// qualifying lower rule: the pending view and the confirmation must
	// land on the same discount.
	bulky := availableDiscount(1, 20, futureDate(30))
	bulky.ProductQuantity = 10
	flat := availableDiscount(2, 10, futureDate(30))

	source := &fakeSource{
		product:    &models.Product{ID: 1},
		client:     &models.Client{ID: 2},
		candidates: []models.Discount{bulky, flat},
	}
	resolver := NewResolver(source, newFakeCache())
	ctx := context.Background()

	resolved, err := resolver.ResolveForQuantity(ctx, 1, 2, 3)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, int64(2), resolved.ID)

	frozen := BestDiscountForQuantity(source.candidates, source.product, source.client, 3, time.Now())
	require.NotNil(t, frozen)
	assert.Equal(t, frozen.ID, resolved.ID)
	assert.Equal(t, frozen.Percentage, resolved.Percentage)

	// At the minimum the bigger rule wins on both paths
	resolved, err = resolver.ResolveForQuantity(ctx, 1, 2, 10)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, int64(1), resolved.ID)
}

func TestResolveForQuantityBypassesPairCache(t *testing.T) {
	source := &fakeSource{
		product:    &models.Product{ID: 1},
		client:     &models.Client{ID: 2},
		candidates: []models.Discount{availableDiscount(7, 10, futureDate(30))},
	}
	resolver := NewResolver(source, newFakeCache())
	ctx := context.Background()

	// Seed the pair cache with the quantity-blind result
	_, err := resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 1, source.listCalls)

	// Quantities vary per line, so this lookup must hit the source
	_, err = resolver.ResolveForQuantity(ctx, 1, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, source.listCalls)
}

func TestResolverInvalidateAll(t *testing.T) {
	source := &fakeSource{
		product:    &models.Product{ID: 1},
		client:     &models.Client{ID: 2},
		candidates: []models.Discount{availableDiscount(7, 10, futureDate(30))},
	}
	cache := newFakeCache()
	resolver := NewResolver(source, cache)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, source.listCalls)

	resolver.InvalidateAll(ctx)

	_, err = resolver.Resolve(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, source.listCalls)
}
