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

// DiscountRepository handles database operations for discount rules.
// Scopes are stored as a kind discriminator plus either a reference column
// (brand_id / sub_category_id / zone_id) or rows in the discount_products /
// discount_clients join tables.
type DiscountRepository struct{}

// NewDiscountRepository creates a new DiscountRepository
func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{}
}

// Ensure DiscountRepository implements DiscountRepositoryInterface
var _ DiscountRepositoryInterface = (*DiscountRepository)(nil)

const discountColumns = `id, description, percentage, product_quantity, expiration_date, status,
	product_scope_kind, COALESCE(brand_id, 0), COALESCE(sub_category_id, 0),
	client_scope_kind, COALESCE(zone_id, 0), created_at`

func scanDiscount(row interface{ Scan(...interface{}) error }) (*models.Discount, error) {
	var d models.Discount
	err := row.Scan(
		&d.ID,
		&d.Description,
		&d.Percentage,
		&d.ProductQuantity,
		&d.ExpirationDate,
		&d.Status,
		&d.ProductScope.Kind,
		&d.ProductScope.BrandID,
		&d.ProductScope.SubCategoryID,
		&d.ClientScope.Kind,
		&d.ClientScope.ZoneID,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func validateDiscountFields(percentage float64, productQuantity int, productScope models.ProductScope, clientScope models.ClientScope) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("percentage must be between 0 and 100")
	}
	if productQuantity < 0 {
		return fmt.Errorf("product_quantity cannot be negative")
	}
	if err := productScope.Validate(); err != nil {
		return err
	}
	return clientScope.Validate()
}

// Create creates a new discount rule with its scope rows
func (r *DiscountRepository) Create(ctx context.Context, req *models.CreateDiscountRequest) (*models.Discount, error) {
	log.Printf("📦 Create: Creating discount %q percentage=%.2f", req.Description, req.Percentage)

	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if err := validateDiscountFields(req.Percentage, req.ProductQuantity, req.ProductScope, req.ClientScope); err != nil {
		return nil, err
	}

	productScope := req.ProductScope
	if productScope.Kind == "" {
		productScope.Kind = models.ProductScopeAll
	}
	clientScope := req.ClientScope
	if clientScope.Kind == "" {
		clientScope.Kind = models.ClientScopeAll
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO discounts (description, percentage, product_quantity, expiration_date, status,
		                       product_scope_kind, brand_id, sub_category_id, client_scope_kind, zone_id)
		VALUES ($1, $2, $3, $4, 'available', $5, $6, $7, $8, $9)
		RETURNING ` + discountColumns

	discount, err := scanDiscount(tx.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Description),
		req.Percentage,
		req.ProductQuantity,
		req.ExpirationDate,
		productScope.Kind,
		sql.NullInt64{Int64: productScope.BrandID, Valid: productScope.Kind == models.ProductScopeBrand},
		sql.NullInt64{Int64: productScope.SubCategoryID, Valid: productScope.Kind == models.ProductScopeSubCategory},
		clientScope.Kind,
		sql.NullInt64{Int64: clientScope.ZoneID, Valid: clientScope.Kind == models.ClientScopeZone},
	))
	if err != nil {
		log.Printf("❌ Create: Error creating discount: %v", err)
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}

	if err := replaceScopeLists(ctx, tx, discount.ID, productScope, clientScope); err != nil {
		return nil, err
	}
	discount.ProductScope.ProductIDs = productScope.ProductIDs
	discount.ClientScope.ClientIDs = clientScope.ClientIDs

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created discount id=%d", discount.ID)
	return discount, nil
}

func replaceScopeLists(ctx context.Context, tx *sql.Tx, discountID int64, productScope models.ProductScope, clientScope models.ClientScope) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM discount_products WHERE discount_id = $1`, discountID); err != nil {
		return fmt.Errorf("failed to clear discount_products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM discount_clients WHERE discount_id = $1`, discountID); err != nil {
		return fmt.Errorf("failed to clear discount_clients: %w", err)
	}

	if productScope.Kind == models.ProductScopeList {
		for _, pid := range productScope.ProductIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO discount_products (discount_id, product_id) VALUES ($1, $2)`, discountID, pid); err != nil {
				return fmt.Errorf("failed to insert discount_product: %w", err)
			}
		}
	}
	if clientScope.Kind == models.ClientScopeList {
		for _, cid := range clientScope.ClientIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO discount_clients (discount_id, client_id) VALUES ($1, $2)`, discountID, cid); err != nil {
				return fmt.Errorf("failed to insert discount_client: %w", err)
			}
		}
	}
	return nil
}

// Update applies a partial update to a discount. Only pending ('available')
// discounts can be edited.
func (r *DiscountRepository) Update(ctx context.Context, id int64, req *models.UpdateDiscountRequest) (*models.Discount, error) {
	log.Printf("📦 Update: Updating discount id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanDiscount(tx.QueryRowContext(ctx, `SELECT `+discountColumns+` FROM discounts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("discount not found")
		}
		return nil, fmt.Errorf("failed to fetch discount: %w", err)
	}

	if current.Status != models.DiscountAvailable {
		return nil, fmt.Errorf("discount not in available status")
	}

	if req.Description != nil {
		current.Description = strings.TrimSpace(*req.Description)
	}
	if req.Percentage != nil {
		current.Percentage = *req.Percentage
	}
	if req.ProductQuantity != nil {
		current.ProductQuantity = *req.ProductQuantity
	}
	if req.ExpirationDate != nil {
		current.ExpirationDate = *req.ExpirationDate
	}
	if req.ProductScope != nil {
		current.ProductScope = *req.ProductScope
		if current.ProductScope.Kind == "" {
			current.ProductScope.Kind = models.ProductScopeAll
		}
	}
	if req.ClientScope != nil {
		current.ClientScope = *req.ClientScope
		if current.ClientScope.Kind == "" {
			current.ClientScope.Kind = models.ClientScopeAll
		}
	}

	if err := validateDiscountFields(current.Percentage, current.ProductQuantity, current.ProductScope, current.ClientScope); err != nil {
		return nil, err
	}

	query := `
		UPDATE discounts
		SET description = $1, percentage = $2, product_quantity = $3, expiration_date = $4,
		    product_scope_kind = $5, brand_id = $6, sub_category_id = $7,
		    client_scope_kind = $8, zone_id = $9
		WHERE id = $10
		RETURNING ` + discountColumns

	updated, err := scanDiscount(tx.QueryRowContext(ctx, query,
		current.Description,
		current.Percentage,
		current.ProductQuantity,
		current.ExpirationDate,
		current.ProductScope.Kind,
		sql.NullInt64{Int64: current.ProductScope.BrandID, Valid: current.ProductScope.Kind == models.ProductScopeBrand},
		sql.NullInt64{Int64: current.ProductScope.SubCategoryID, Valid: current.ProductScope.Kind == models.ProductScopeSubCategory},
		current.ClientScope.Kind,
		sql.NullInt64{Int64: current.ClientScope.ZoneID, Valid: current.ClientScope.Kind == models.ClientScopeZone},
		id,
	))
	if err != nil {
		log.Printf("❌ Update: Error updating discount: %v", err)
		return nil, fmt.Errorf("failed to update discount: %w", err)
	}

	if err := replaceScopeLists(ctx, tx, id, current.ProductScope, current.ClientScope); err != nil {
		return nil, err
	}
	updated.ProductScope.ProductIDs = current.ProductScope.ProductIDs
	updated.ClientScope.ClientIDs = current.ClientScope.ClientIDs

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Update: Successfully updated discount id=%d", id)
	return updated, nil
}

// GetByID retrieves a discount with its scope lists
func (r *DiscountRepository) GetByID(ctx context.Context, id int64) (*models.Discount, error) {
	discount, err := scanDiscount(db.DB.QueryRowContext(ctx, `SELECT `+discountColumns+` FROM discounts WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("discount not found")
		}
		return nil, fmt.Errorf("failed to fetch discount: %w", err)
	}
	list := []models.Discount{*discount}
	if err := loadScopeLists(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// loadScopeLists fills ProductIDs/ClientIDs for list-scoped discounts
func loadScopeLists(ctx context.Context, discounts []models.Discount) error {
	var ids []int64
	index := make(map[int64]*models.Discount, len(discounts))
	for i := range discounts {
		d := &discounts[i]
		index[d.ID] = d
		if d.ProductScope.Kind == models.ProductScopeList || d.ClientScope.Kind == models.ClientScopeList {
			ids = append(ids, d.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := db.DB.QueryContext(ctx,
		`SELECT discount_id, product_id FROM discount_products WHERE discount_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to load discount_products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var discountID, productID int64
		if err := rows.Scan(&discountID, &productID); err != nil {
			return fmt.Errorf("failed to scan discount_product: %w", err)
		}
		if d, ok := index[discountID]; ok {
			d.ProductScope.ProductIDs = append(d.ProductScope.ProductIDs, productID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	clientRows, err := db.DB.QueryContext(ctx,
		`SELECT discount_id, client_id FROM discount_clients WHERE discount_id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to load discount_clients: %w", err)
	}
	defer clientRows.Close()
	for clientRows.Next() {
		var discountID, clientID int64
		if err := clientRows.Scan(&discountID, &clientID); err != nil {
			return fmt.Errorf("failed to scan discount_client: %w", err)
		}
		if d, ok := index[discountID]; ok {
			d.ClientScope.ClientIDs = append(d.ClientScope.ClientIDs, clientID)
		}
	}
	return clientRows.Err()
}

// List retrieves discounts matching the optional filters with pagination
func (r *DiscountRepository) List(ctx context.Context, params *models.DiscountFilterParams, page, pageSize int) ([]models.Discount, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if params != nil {
		if params.Status != nil {
			conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
			args = append(args, *params.Status)
			argPos++
		}
		if params.ProductScopeKind != nil {
			conditions = append(conditions, fmt.Sprintf("product_scope_kind = $%d", argPos))
			args = append(args, *params.ProductScopeKind)
			argPos++
		}
	}

	query := `SELECT ` + discountColumns + ` FROM discounts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error querying discounts: %v", err)
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	defer rows.Close()

	discounts := []models.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadScopeLists(ctx, discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

// SetStatus closes or cancels a discount. Only available discounts can
// change status.
func (r *DiscountRepository) SetStatus(ctx context.Context, id int64, status models.DiscountStatus) (*models.Discount, error) {
	log.Printf("📦 SetStatus: Setting discount id=%d status=%s", id, status)

	if status != models.DiscountClosed && status != models.DiscountCancelled {
		return nil, fmt.Errorf("status must be 'closed' or 'cancelled'")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var currentStatus models.DiscountStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM discounts WHERE id = $1 FOR UPDATE`, id).Scan(&currentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("discount not found")
		}
		return nil, fmt.Errorf("failed to fetch discount: %w", err)
	}
	if currentStatus != models.DiscountAvailable {
		return nil, fmt.Errorf("discount not in available status")
	}

	discount, err := scanDiscount(tx.QueryRowContext(ctx,
		`UPDATE discounts SET status = $1 WHERE id = $2 RETURNING `+discountColumns, status, id))
	if err != nil {
		log.Printf("❌ SetStatus: Error updating discount: %v", err)
		return nil, fmt.Errorf("failed to update discount status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ SetStatus: Discount id=%d is now %s", id, status)
	return discount, nil
}

// ListCandidateDiscounts returns every available, unexpired discount with
// its scope lists loaded. The resolver narrows these down per
// product/client pair.
func (r *DiscountRepository) ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error) {
	rows, err := db.DB.QueryContext(ctx,
		`SELECT `+discountColumns+` FROM discounts WHERE status = 'available' AND expiration_date > NOW() ORDER BY id ASC`)
	if err != nil {
		log.Printf("❌ ListCandidateDiscounts: Error querying discounts: %v", err)
		return nil, fmt.Errorf("failed to list candidate discounts: %w", err)
	}
	defer rows.Close()

	discounts := []models.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadScopeLists(ctx, discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}
