package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
)

// ReturnRequestRepository handles database operations for merchandise returns.
// A return is always raised against a confirmed order and each returned
// quantity is bounded by the quantity delivered for that product.
type ReturnRequestRepository struct{}

// NewReturnRequestRepository creates a new ReturnRequestRepository
func NewReturnRequestRepository() *ReturnRequestRepository {
	return &ReturnRequestRepository{}
}

// Ensure ReturnRequestRepository implements ReturnRequestRepositoryInterface
var _ ReturnRequestRepositoryInterface = (*ReturnRequestRepository)(nil)

const returnColumns = `id, order_id, user_id, date, confirmed_at, status, COALESCE(observations, '')`

func scanReturnRequest(row interface{ Scan(...interface{}) error }) (*models.ReturnRequest, error) {
	var rr models.ReturnRequest
	var confirmedAt sql.NullTime
	err := row.Scan(&rr.ID, &rr.OrderID, &rr.UserID, &rr.Date, &confirmedAt, &rr.Status, &rr.Observations)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		rr.ConfirmedAt = &t
	}
	return &rr, nil
}

func fetchReturnItems(ctx context.Context, q queryer, returnRequestID int64) ([]models.ReturnRequestItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT ri.id, ri.return_request_id, ri.product_id, p.name, ri.quantity, ri.delivered_quantity
		FROM return_request_products ri
		JOIN products p ON p.id = ri.product_id
		WHERE ri.return_request_id = $1
		ORDER BY ri.product_id`, returnRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch return items: %w", err)
	}
	defer rows.Close()

	items := []models.ReturnRequestItem{}
	for rows.Next() {
		var item models.ReturnRequestItem
		err := rows.Scan(&item.ID, &item.ReturnRequestID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.DeliveredQuantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan return item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create creates a pending return request against a confirmed order.
// Quantities over the delivered quantity are rejected, not clamped.
func (r *ReturnRequestRepository) Create(ctx context.Context, userID int64, req *models.CreateReturnRequestRequest) (*models.ReturnRequest, error) {
	log.Printf("📦 Create: Creating return request for order id=%d", req.OrderID)

	if len(req.Items) == 0 {
		return nil, &pricing.ValidationError{Field: "items", Message: "return request must contain at least one item"}
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var orderStatus models.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, req.OrderID).Scan(&orderStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if orderStatus != models.StatusConfirmed {
		return nil, fmt.Errorf("returns can only be raised against confirmed orders (order is %s)", orderStatus)
	}

	// delivered quantities per product on the referenced order
	delivered := map[int64]int{}
	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_products WHERE order_id = $1`, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch delivered quantities: %w", err)
	}
	for rows.Next() {
		var productID int64
		var quantity int
		if err := rows.Scan(&productID, &quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan delivered quantity: %w", err)
		}
		delivered[productID] = quantity
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	seen := map[int64]bool{}
	for _, item := range req.Items {
		if seen[item.ProductID] {
			return nil, &pricing.ValidationError{Field: "items", Message: fmt.Sprintf("product %d appears more than once", item.ProductID)}
		}
		seen[item.ProductID] = true
		if item.Quantity < 1 {
			return nil, &pricing.ValidationError{Field: "quantity", Message: fmt.Sprintf("product %d: quantity must be at least 1", item.ProductID)}
		}
		deliveredQty, ok := delivered[item.ProductID]
		if !ok {
			return nil, &pricing.ValidationError{Field: "productId", Message: fmt.Sprintf("product %d was not part of order %d", item.ProductID, req.OrderID)}
		}
		if item.Quantity > deliveredQty {
			return nil, &pricing.ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("product %d: cannot return %d, only %d delivered", item.ProductID, item.Quantity, deliveredQty),
			}
		}
	}

	returnRequest, err := scanReturnRequest(tx.QueryRowContext(ctx, `
		INSERT INTO return_requests (order_id, user_id, date, status, observations)
		VALUES ($1, $2, NOW(), 'pending', $3)
		RETURNING `+returnColumns,
		req.OrderID, userID, sql.NullString{String: req.Observations, Valid: req.Observations != ""}))
	if err != nil {
		log.Printf("❌ Create: Error creating return request: %v", err)
		return nil, fmt.Errorf("failed to create return request: %w", err)
	}

	for _, item := range req.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO return_request_products (return_request_id, product_id, quantity, delivered_quantity)
			VALUES ($1, $2, $3, $4)`,
			returnRequest.ID, item.ProductID, item.Quantity, delivered[item.ProductID])
		if err != nil {
			return nil, fmt.Errorf("failed to insert return item: %w", err)
		}
	}

	returnRequest.Items, err = fetchReturnItems(ctx, tx, returnRequest.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Created return request id=%d with %d item(s)", returnRequest.ID, len(returnRequest.Items))
	return returnRequest, nil
}

// GetByID retrieves a return request with its items and requesting user name
func (r *ReturnRequestRepository) GetByID(ctx context.Context, id int64) (*models.ReturnRequest, error) {
	var rr models.ReturnRequest
	var confirmedAt sql.NullTime
	err := db.DB.QueryRowContext(ctx, `
		SELECT rr.id, rr.order_id, rr.user_id, u.name, rr.date, rr.confirmed_at,
		       rr.status, COALESCE(rr.observations, '')
		FROM return_requests rr
		JOIN users u ON u.id = rr.user_id
		WHERE rr.id = $1`, id).
		Scan(&rr.ID, &rr.OrderID, &rr.UserID, &rr.UserName, &rr.Date,
			&confirmedAt, &rr.Status, &rr.Observations)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("return request not found")
		}
		return nil, fmt.Errorf("failed to fetch return request: %w", err)
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		rr.ConfirmedAt = &t
	}

	rr.Items, err = fetchReturnItems(ctx, db.DB, id)
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// List retrieves return requests with pagination, newest first
func (r *ReturnRequestRepository) List(ctx context.Context, page, pageSize int) ([]models.ReturnRequest, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT rr.id, rr.order_id, rr.user_id, u.name, rr.date, rr.confirmed_at,
		       rr.status, COALESCE(rr.observations, '')
		FROM return_requests rr
		JOIN users u ON u.id = rr.user_id
		ORDER BY rr.date DESC, rr.id DESC
		LIMIT $1 OFFSET $2`, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("❌ List: Error querying return requests: %v", err)
		return nil, fmt.Errorf("failed to list return requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ReturnRequest{}
	for rows.Next() {
		var rr models.ReturnRequest
		var confirmedAt sql.NullTime
		err := rows.Scan(&rr.ID, &rr.OrderID, &rr.UserID, &rr.UserName, &rr.Date,
			&confirmedAt, &rr.Status, &rr.Observations)
		if err != nil {
			return nil, fmt.Errorf("failed to scan return request: %w", err)
		}
		if confirmedAt.Valid {
			t := confirmedAt.Time
			rr.ConfirmedAt = &t
		}
		requests = append(requests, rr)
	}
	return requests, rows.Err()
}

// Confirm transitions a pending return request to confirmed and restores
// both physical and available stock for every returned item.
func (r *ReturnRequestRepository) Confirm(ctx context.Context, id int64) (*models.ReturnRequest, error) {
	log.Printf("📦 Confirm: Confirming return request id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM return_requests WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("return request not found")
		}
		return nil, fmt.Errorf("failed to fetch return request: %w", err)
	}
	if err := models.Transition(status, models.StatusConfirmed); err != nil {
		return nil, err
	}

	items, err := fetchReturnItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = stock + $1, available_stock = available_stock + $1
			WHERE id = $2`, item.Quantity, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to restore stock for product %d: %w", item.ProductID, err)
		}
		log.Printf("✓ Confirm: Restored %d unit(s) of product %d", item.Quantity, item.ProductID)
	}

	returnRequest, err := scanReturnRequest(tx.QueryRowContext(ctx, `
		UPDATE return_requests SET status = 'confirmed', confirmed_at = NOW() WHERE id = $1
		RETURNING `+returnColumns, id))
	if err != nil {
		return nil, fmt.Errorf("failed to confirm return request: %w", err)
	}
	returnRequest.Items = items

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("🎉 Confirm: Return request id=%d confirmed, stock restored", id)
	return returnRequest, nil
}

// Cancel transitions a pending return request to cancelled. No stock moves.
func (r *ReturnRequestRepository) Cancel(ctx context.Context, id int64) (*models.ReturnRequest, error) {
	log.Printf("📦 Cancel: Cancelling return request id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM return_requests WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("return request not found")
		}
		return nil, fmt.Errorf("failed to fetch return request: %w", err)
	}
	if err := models.Transition(status, models.StatusCancelled); err != nil {
		return nil, err
	}

	returnRequest, err := scanReturnRequest(tx.QueryRowContext(ctx, `
		UPDATE return_requests SET status = 'cancelled' WHERE id = $1
		RETURNING `+returnColumns, id))
	if err != nil {
		return nil, fmt.Errorf("failed to cancel return request: %w", err)
	}

	returnRequest.Items, err = fetchReturnItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Cancel: Return request id=%d cancelled", id)
	return returnRequest, nil
}
