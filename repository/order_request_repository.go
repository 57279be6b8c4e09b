package repository

import (
	"context"
	"database/sql"
	"fmt"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// OrderRequestRepository handles database operations for order requests
type OrderRequestRepository struct{}

// NewOrderRequestRepository creates a new OrderRequestRepository
func NewOrderRequestRepository() *OrderRequestRepository {
	return &OrderRequestRepository{}
}

// Ensure OrderRequestRepository implements OrderRequestRepositoryInterface
var _ OrderRequestRepositoryInterface = (*OrderRequestRepository)(nil)

// GetByID retrieves an order request with its requested items
func (r *OrderRequestRepository) GetByID(ctx context.Context, id int64) (*models.OrderRequest, error) {
	var req models.OrderRequest
	err := db.DB.QueryRowContext(ctx,
		`SELECT id, client_id, date, converted FROM order_requests WHERE id = $1`, id).
		Scan(&req.ID, &req.ClientID, &req.Date, &req.Converted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order request not found")
		}
		return nil, fmt.Errorf("failed to fetch order request: %w", err)
	}

	rows, err := db.DB.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_request_products WHERE order_request_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order request items: %w", err)
	}
	defer rows.Close()

	req.Items = []models.OrderRequestItem{}
	for rows.Next() {
		var item models.OrderRequestItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order request item: %w", err)
		}
		req.Items = append(req.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &req, nil
}
