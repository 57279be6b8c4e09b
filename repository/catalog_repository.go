package repository

import (
	"context"
	"fmt"
	"log"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// CatalogRepository provides the product rows for the client price list
// catalog. Effective prices are filled in later by the catalog service
// against a concrete client.
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// GetCatalogItems retrieves every active product with brand and subcategory
// names, ordered for catalog rendering
func (r *CatalogRepository) GetCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.internal_code, b.name, sc.name, p.price,
		       COALESCE(p.image_url, '')
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		JOIN sub_categories sc ON sc.id = p.sub_category_id
		WHERE p.active = true
		ORDER BY sc.name, b.name, p.name`)
	if err != nil {
		log.Printf("❌ GetCatalogItems: Error querying catalog products: %v", err)
		return nil, fmt.Errorf("failed to fetch catalog items: %w", err)
	}
	defer rows.Close()

	items := []models.CatalogItem{}
	for rows.Next() {
		var item models.CatalogItem
		err := rows.Scan(&item.ID, &item.Name, &item.InternalCode,
			&item.BrandName, &item.SubCategoryName, &item.ListPrice, &item.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		item.EffectivePrice = item.ListPrice
		items = append(items, item)
	}
	return items, rows.Err()
}
