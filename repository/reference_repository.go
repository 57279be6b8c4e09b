package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// ReferenceRepository handles database operations for reference data:
// brands, categories, subcategories and zones.
type ReferenceRepository struct{}

// NewReferenceRepository creates a new ReferenceRepository
func NewReferenceRepository() *ReferenceRepository {
	return &ReferenceRepository{}
}

// Ensure ReferenceRepository implements ReferenceRepositoryInterface
var _ ReferenceRepositoryInterface = (*ReferenceRepository)(nil)

func listNamed(ctx context.Context, table string) ([]struct {
	ID   int64
	Name string
}, error) {
	rows, err := db.DB.QueryContext(ctx, fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name ASC`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	var out []struct {
		ID   int64
		Name string
	}
	for rows.Next() {
		var row struct {
			ID   int64
			Name string
		}
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func createNamed(ctx context.Context, table, name string) (int64, string, error) {
	if strings.TrimSpace(name) == "" {
		return 0, "", fmt.Errorf("name cannot be empty")
	}
	var id int64
	var stored string
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id, name`, table)
	if err := db.DB.QueryRowContext(ctx, query, strings.TrimSpace(name)).Scan(&id, &stored); err != nil {
		log.Printf("❌ createNamed: Error inserting into %s: %v", table, err)
		return 0, "", fmt.Errorf("failed to create %s: %w", table, err)
	}
	return id, stored, nil
}

// ListBrands lists all brands
func (r *ReferenceRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := listNamed(ctx, "brands")
	if err != nil {
		return nil, err
	}
	brands := make([]models.Brand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, models.Brand{ID: row.ID, Name: row.Name})
	}
	return brands, nil
}

// CreateBrand creates a new brand
func (r *ReferenceRepository) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	id, stored, err := createNamed(ctx, "brands", name)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ CreateBrand: Created brand id=%d", id)
	return &models.Brand{ID: id, Name: stored}, nil
}

// ListCategories lists all categories
func (r *ReferenceRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := listNamed(ctx, "categories")
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, models.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

// CreateCategory creates a new category
func (r *ReferenceRepository) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	id, stored, err := createNamed(ctx, "categories", name)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ CreateCategory: Created category id=%d", id)
	return &models.Category{ID: id, Name: stored}, nil
}

// ListSubCategories lists subcategories, optionally restricted to a category
func (r *ReferenceRepository) ListSubCategories(ctx context.Context, categoryID *int64) ([]models.SubCategory, error) {
	query := `SELECT id, category_id, name FROM sub_categories`
	args := []interface{}{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name ASC`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub_categories: %w", err)
	}
	defer rows.Close()

	subCategories := []models.SubCategory{}
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan sub_category: %w", err)
		}
		subCategories = append(subCategories, sc)
	}
	return subCategories, rows.Err()
}

// CreateSubCategory creates a new subcategory under a category
func (r *ReferenceRepository) CreateSubCategory(ctx context.Context, categoryID int64, name string) (*models.SubCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	var sc models.SubCategory
	err := db.DB.QueryRowContext(ctx,
		`INSERT INTO sub_categories (category_id, name) VALUES ($1, $2) RETURNING id, category_id, name`,
		categoryID, strings.TrimSpace(name)).Scan(&sc.ID, &sc.CategoryID, &sc.Name)
	if err != nil {
		log.Printf("❌ CreateSubCategory: Error inserting sub_category: %v", err)
		return nil, fmt.Errorf("failed to create sub_category: %w", err)
	}
	log.Printf("✅ CreateSubCategory: Created sub_category id=%d", sc.ID)
	return &sc, nil
}

// ListZones lists all zones
func (r *ReferenceRepository) ListZones(ctx context.Context) ([]models.Zone, error) {
	rows, err := listNamed(ctx, "zones")
	if err != nil {
		return nil, err
	}
	zones := make([]models.Zone, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, models.Zone{ID: row.ID, Name: row.Name})
	}
	return zones, nil
}

// CreateZone creates a new zone
func (r *ReferenceRepository) CreateZone(ctx context.Context, name string) (*models.Zone, error) {
	id, stored, err := createNamed(ctx, "zones", name)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ CreateZone: Created zone id=%d", id)
	return &models.Zone{ID: id, Name: stored}, nil
}
