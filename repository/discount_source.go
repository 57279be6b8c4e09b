package repository

import (
	"context"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
)

// DiscountSourceAdapter bundles the repositories the discount resolver
// reads from behind the pricing.DiscountSource contract.
type DiscountSourceAdapter struct {
	Products  ProductRepositoryInterface
	Clients   ClientRepositoryInterface
	Discounts DiscountRepositoryInterface
}

// NewDiscountSourceAdapter creates a new DiscountSourceAdapter
func NewDiscountSourceAdapter(products ProductRepositoryInterface, clients ClientRepositoryInterface, discounts DiscountRepositoryInterface) *DiscountSourceAdapter {
	return &DiscountSourceAdapter{Products: products, Clients: clients, Discounts: discounts}
}

// Ensure DiscountSourceAdapter implements pricing.DiscountSource
var _ pricing.DiscountSource = (*DiscountSourceAdapter)(nil)

// GetProductByID implements pricing.DiscountSource
func (a *DiscountSourceAdapter) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return a.Products.GetByID(ctx, id)
}

// GetClientByID implements pricing.DiscountSource
func (a *DiscountSourceAdapter) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	return a.Clients.GetByID(ctx, id)
}

// ListCandidateDiscounts implements pricing.DiscountSource
func (a *DiscountSourceAdapter) ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error) {
	return a.Discounts.ListCandidateDiscounts(ctx)
}
