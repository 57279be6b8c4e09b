package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// cacheTTL bounds how long a resolved best discount is served from cache
const cacheTTL = 5 * time.Minute

// noDiscountMarker is cached when the lookup legitimately found nothing,
// so a miss can be told apart from a never-cached pair.
const noDiscountMarker = "none"

// BestDiscount selects the single best applicable discount for a
// product/client pair from the given candidates. A candidate applies when it
// is available, unexpired at now, and both its product scope and client
// scope match. Ranking: highest percentage wins; ties are broken by earliest
// expiration date, then by lowest id. Returns nil when nothing applies.
func BestDiscount(candidates []models.Discount, product *models.Product, client *models.Client, now time.Time) *models.Discount {
	var best *models.Discount
	for i := range candidates {
		d := &candidates[i]
		if !Applies(d, product, client, now) {
			continue
		}
		if best == nil || ranksHigher(d, best) {
			best = d
		}
	}
	return best
}

// BestDiscountForQuantity is BestDiscount restricted to candidates whose
// minimum qualifying quantity is met.
func BestDiscountForQuantity(candidates []models.Discount, product *models.Product, client *models.Client, quantity int, now time.Time) *models.Discount {
	qualified := make([]models.Discount, 0, len(candidates))
	for _, d := range candidates {
		if d.ProductQuantity > 0 && quantity < d.ProductQuantity {
			continue
		}
		qualified = append(qualified, d)
	}
	return BestDiscount(qualified, product, client, now)
}

// Applies reports whether a single discount matches the product/client pair at now
func Applies(d *models.Discount, product *models.Product, client *models.Client, now time.Time) bool {
	if d.Status != models.DiscountAvailable {
		return false
	}
	if !d.ExpirationDate.After(now) {
		return false
	}
	if !d.ProductScope.Matches(product) {
		return false
	}
	return d.ClientScope.Matches(client)
}

// ranksHigher reports whether a should be preferred over b
func ranksHigher(a, b *models.Discount) bool {
	if a.Percentage != b.Percentage {
		return a.Percentage > b.Percentage
	}
	// Prefer the discount that expires sooner (use it up first)
	if !a.ExpirationDate.Equal(b.ExpirationDate) {
		return a.ExpirationDate.Before(b.ExpirationDate)
	}
	return a.ID < b.ID
}

// DiscountSource provides the data the resolver needs. Implemented by the
// repository layer.
type DiscountSource interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error)
}

// Resolver resolves the current best discount for a product/client pair,
// consulting a cache first. A nil discount with a nil error means
// "no discount applies" and is distinct from a lookup failure.
type Resolver struct {
	source DiscountSource
	cache  db.CacheClient // may be nil, the resolver then always hits the source
}

// NewResolver creates a new Resolver
func NewResolver(source DiscountSource, cache db.CacheClient) *Resolver {
	return &Resolver{source: source, cache: cache}
}

// Resolve returns the best discount for (productID, clientID), or (nil, nil)
// when none applies.
func (r *Resolver) Resolve(ctx context.Context, productID, clientID int64) (*models.Discount, error) {
	key := cacheKey(productID, clientID)

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key)
		if err == nil {
			if cached == noDiscountMarker {
				return nil, nil
			}
			var d models.Discount
			if err := json.Unmarshal([]byte(cached), &d); err == nil {
				return &d, nil
			}
			log.Printf("⚠️  Resolve: Discarding corrupt cache entry for %s", key)
		} else if err != db.ErrCacheMiss {
			// Cache being down must not break the lookup
			log.Printf("⚠️  Resolve: Cache lookup failed for %s: %v", key, err)
		}
	}

	product, client, candidates, err := r.load(ctx, productID, clientID)
	if err != nil {
		return nil, err
	}

	best := BestDiscount(candidates, product, client, time.Now())

	if r.cache != nil {
		if best == nil {
			if err := r.cache.Set(ctx, key, noDiscountMarker, cacheTTL); err != nil {
				log.Printf("⚠️  Resolve: Failed to cache empty result for %s: %v", key, err)
			}
		} else if payload, err := json.Marshal(best); err == nil {
			if err := r.cache.Set(ctx, key, string(payload), cacheTTL); err != nil {
				log.Printf("⚠️  Resolve: Failed to cache result for %s: %v", key, err)
			}
		}
	}

	return best, nil
}

// ResolveForQuantity returns the best discount for (productID, clientID)
// among the candidates whose minimum qualifying quantity is met, so it
// selects the same discount a confirmation would freeze for that line.
// Quantities vary per order line; this path always hits the source instead
// of the pair-keyed cache.
func (r *Resolver) ResolveForQuantity(ctx context.Context, productID, clientID int64, quantity int) (*models.Discount, error) {
	product, client, candidates, err := r.load(ctx, productID, clientID)
	if err != nil {
		return nil, err
	}
	return BestDiscountForQuantity(candidates, product, client, quantity, time.Now()), nil
}

func (r *Resolver) load(ctx context.Context, productID, clientID int64) (*models.Product, *models.Client, []models.Discount, error) {
	product, err := r.source.GetProductByID(ctx, productID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	client, err := r.source.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load client %d: %w", clientID, err)
	}
	candidates, err := r.source.ListCandidateDiscounts(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load candidate discounts: %w", err)
	}
	return product, client, candidates, nil
}

// Invalidate drops the cached resolution for a product/client pair
func (r *Resolver) Invalidate(ctx context.Context, productID, clientID int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, cacheKey(productID, clientID)); err != nil {
		log.Printf("⚠️  Invalidate: Failed to delete cache key: %v", err)
	}
}

// InvalidateAll drops every cached resolution. Called after discount
// mutations, whose scopes can affect arbitrary pairs.
func (r *Resolver) InvalidateAll(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePrefix(ctx, "discount:best:"); err != nil {
		log.Printf("⚠️  InvalidateAll: Failed to flush discount cache: %v", err)
	}
}

func cacheKey(productID, clientID int64) string {
	return fmt.Sprintf("discount:best:%d:%d", productID, clientID)
}
