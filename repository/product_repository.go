package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, name, unit_type, price, stock, available_stock,
	COALESCE(image_url, '') as image_url, COALESCE(drive_file_id, '') as drive_file_id,
	internal_code, COALESCE(barcode, '') as barcode, brand_id, sub_category_id,
	active, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.UnitType,
		&p.Price,
		&p.Stock,
		&p.AvailableStock,
		&p.ImageURL,
		&p.DriveFileID,
		&p.InternalCode,
		&p.Barcode,
		&p.BrandID,
		&p.SubCategoryID,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a new product. Available stock starts equal to stock.
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	log.Printf("📦 Create: Creating product internal_code=%s name=%s", req.InternalCode, req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(req.InternalCode) == "" {
		return nil, fmt.Errorf("internal_code cannot be empty")
	}
	if req.UnitType != models.UnitTypeUnit && req.UnitType != models.UnitTypeKilo {
		return nil, fmt.Errorf("unit_type must be 'unit' or 'kilo'")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	query := `
		INSERT INTO products (name, unit_type, price, stock, available_stock, internal_code, barcode, brand_id, sub_category_id, active)
		VALUES ($1, $2, $3, $4, $4, $5, $6, $7, $8, true)
		RETURNING ` + productColumns

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		req.Name,
		req.UnitType,
		req.Price,
		req.Stock,
		strings.ToUpper(strings.TrimSpace(req.InternalCode)),
		sql.NullString{String: req.Barcode, Valid: req.Barcode != ""},
		req.BrandID,
		req.SubCategoryID,
	))
	if err != nil {
		log.Printf("❌ Create: Error creating product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Printf("✅ Create: Successfully created product id=%d", product.ID)
	return product, nil
}

// Update applies a partial update to a product. When stock changes, the
// delta is applied to available_stock as well so existing reservations are
// preserved.
func (r *ProductRepository) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	log.Printf("📦 Update: Updating product id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Update: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanProduct(tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ Update: Product not found: id=%d", id)
			return nil, fmt.Errorf("product not found")
		}
		log.Printf("❌ Update: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.UnitType != nil {
		if *req.UnitType != models.UnitTypeUnit && *req.UnitType != models.UnitTypeKilo {
			return nil, fmt.Errorf("unit_type must be 'unit' or 'kilo'")
		}
		current.UnitType = *req.UnitType
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		current.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		delta := *req.Stock - current.Stock
		current.Stock = *req.Stock
		current.AvailableStock += delta
		if current.AvailableStock < 0 {
			return nil, fmt.Errorf("stock update would leave available_stock negative (reserved quantities exceed new stock)")
		}
	}
	if req.InternalCode != nil {
		current.InternalCode = strings.ToUpper(strings.TrimSpace(*req.InternalCode))
	}
	if req.Barcode != nil {
		current.Barcode = *req.Barcode
	}
	if req.BrandID != nil {
		current.BrandID = *req.BrandID
	}
	if req.SubCategoryID != nil {
		current.SubCategoryID = *req.SubCategoryID
	}
	if req.Active != nil {
		current.Active = *req.Active
	}

	query := `
		UPDATE products
		SET name = $1, unit_type = $2, price = $3, stock = $4, available_stock = $5,
		    internal_code = $6, barcode = $7, brand_id = $8, sub_category_id = $9,
		    active = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING ` + productColumns

	updated, err := scanProduct(tx.QueryRowContext(ctx, query,
		current.Name,
		current.UnitType,
		current.Price,
		current.Stock,
		current.AvailableStock,
		current.InternalCode,
		sql.NullString{String: current.Barcode, Valid: current.Barcode != ""},
		current.BrandID,
		current.SubCategoryID,
		current.Active,
		id,
	))
	if err != nil {
		log.Printf("❌ Update: Error updating product: %v", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Update: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Update: Successfully updated product id=%d", id)
	return updated, nil
}

// GetByID retrieves a product by id
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(db.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		log.Printf("❌ GetByID: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// GetByInternalCode retrieves a product by its internal code
func (r *ProductRepository) GetByInternalCode(ctx context.Context, code string) (*models.Product, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	product, err := scanProduct(db.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE internal_code = $1`, normalized))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		log.Printf("❌ GetByInternalCode: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// Filter retrieves products matching the optional filters with pagination
func (r *ProductRepository) Filter(ctx context.Context, params *models.ProductFilterParams, page, pageSize int) ([]models.Product, error) {
	log.Printf("📦 Filter: Filtering products page=%d pageSize=%d", page, pageSize)

	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if params != nil {
		if params.Name != nil && *params.Name != "" {
			conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
			args = append(args, "%"+*params.Name+"%")
			argPos++
		}
		if params.InternalCode != nil && *params.InternalCode != "" {
			conditions = append(conditions, fmt.Sprintf("internal_code = $%d", argPos))
			args = append(args, strings.ToUpper(strings.TrimSpace(*params.InternalCode)))
			argPos++
		}
		if params.Barcode != nil && *params.Barcode != "" {
			conditions = append(conditions, fmt.Sprintf("barcode = $%d", argPos))
			args = append(args, *params.Barcode)
			argPos++
		}
		if params.BrandID != nil {
			conditions = append(conditions, fmt.Sprintf("brand_id = $%d", argPos))
			args = append(args, *params.BrandID)
			argPos++
		}
		if params.SubCategoryID != nil {
			conditions = append(conditions, fmt.Sprintf("sub_category_id = $%d", argPos))
			args = append(args, *params.SubCategoryID)
			argPos++
		}
		if params.ActiveOnly {
			conditions = append(conditions, "active = true")
		}
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Filter: Error querying products: %v", err)
		return nil, fmt.Errorf("failed to filter products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Printf("❌ Filter: Error scanning product: %v", err)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Printf("✅ Filter: Found %d products", len(products))
	return products, nil
}

// SetImage stores the Drive file id and public image URL for a product
func (r *ProductRepository) SetImage(ctx context.Context, id int64, driveFileID, imageURL string) error {
	result, err := db.DB.ExecContext(ctx,
		`UPDATE products SET drive_file_id = $1, image_url = $2, updated_at = NOW() WHERE id = $3`,
		driveFileID, imageURL, id)
	if err != nil {
		log.Printf("❌ SetImage: Error updating product image: %v", err)
		return fmt.Errorf("failed to set product image: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// ExistsByDriveFileID checks whether a product already uses the given Drive file
func (r *ProductRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	err := db.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE drive_file_id = $1)`, driveFileID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check drive_file_id: %w", err)
	}
	return exists, nil
}
