package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
)

// OrderRepository handles database operations for sales orders.
// Available stock is reserved when an order is created from a request,
// adjusted on preparation, consumed on confirmation and released on
// cancellation.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	var o models.Order
	var confirmedAt sql.NullTime
	var orderRequestID sql.NullInt64
	err := row.Scan(
		&o.ID,
		&o.ClientID,
		&o.UserID,
		&o.Date,
		&confirmedAt,
		&o.Status,
		&o.Crates,
		&o.Observations,
		&orderRequestID,
	)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		o.ConfirmedAt = &t
	}
	if orderRequestID.Valid {
		id := orderRequestID.Int64
		o.OrderRequestID = &id
	}
	return &o, nil
}

const orderColumns = `id, client_id, user_id, date, confirmed_at, status, crates, COALESCE(observations, ''), order_request_id`

func fetchOrderItems(ctx context.Context, q queryer, orderID int64) ([]models.OrderProductItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT op.id, op.order_id, op.product_id, p.name, p.unit_type,
		       op.quantity, op.unit_price, op.discount, op.weight
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY op.product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderProductItem{}
	for rows.Next() {
		var item models.OrderProductItem
		var weight sql.NullFloat64
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.UnitType, &item.Quantity, &item.UnitPrice, &item.Discount, &weight)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if weight.Valid {
			w := weight.Float64
			item.Weight = &w
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByID retrieves an order with its line items, client and user names
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	var confirmedAt sql.NullTime
	var orderRequestID sql.NullInt64
	err := db.DB.QueryRowContext(ctx, `
		SELECT o.id, o.client_id, c.name, o.user_id, u.name, o.date, o.confirmed_at,
		       o.status, o.crates, COALESCE(o.observations, ''), o.order_request_id
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`, id).
		Scan(&o.ID, &o.ClientID, &o.ClientName, &o.UserID, &o.UserName, &o.Date,
			&confirmedAt, &o.Status, &o.Crates, &o.Observations, &orderRequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		o.ConfirmedAt = &t
	}
	if orderRequestID.Valid {
		reqID := orderRequestID.Int64
		o.OrderRequestID = &reqID
	}

	o.Items, err = fetchOrderItems(ctx, db.DB, id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List retrieves orders matching the optional filters with pagination.
// Totals reflect the stored unit prices (for pending orders these are list
// prices before any dynamic discount).
func (r *OrderRepository) List(ctx context.Context, params *models.OrderFilterParams, page, pageSize int) ([]models.OrderListItem, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if params != nil {
		if params.Status != nil {
			conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
			args = append(args, *params.Status)
			argPos++
		}
		if params.ClientID != nil {
			conditions = append(conditions, fmt.Sprintf("o.client_id = $%d", argPos))
			args = append(args, *params.ClientID)
			argPos++
		}
		if params.DateFrom != nil {
			conditions = append(conditions, fmt.Sprintf("o.date >= $%d", argPos))
			args = append(args, *params.DateFrom)
			argPos++
		}
		if params.DateTo != nil {
			conditions = append(conditions, fmt.Sprintf("o.date <= $%d", argPos))
			args = append(args, *params.DateTo)
			argPos++
		}
	}

	query := `
		SELECT o.id, o.client_id, c.name, o.user_id, o.date, o.confirmed_at,
		       o.status, o.crates, COALESCE(o.observations, ''), o.order_request_id,
		       COUNT(op.id), COALESCE(SUM(op.quantity * op.unit_price), 0)
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		LEFT JOIN order_products op ON op.order_id = o.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(`
		GROUP BY o.id, c.name
		ORDER BY o.date DESC, o.id DESC
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ List: Error querying orders: %v", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.OrderListItem{}
	for rows.Next() {
		var item models.OrderListItem
		var confirmedAt sql.NullTime
		var orderRequestID sql.NullInt64
		err := rows.Scan(&item.ID, &item.ClientID, &item.ClientName, &item.UserID,
			&item.Date, &confirmedAt, &item.Status, &item.Crates, &item.Observations,
			&orderRequestID, &item.LineCount, &item.Total)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if confirmedAt.Valid {
			t := confirmedAt.Time
			item.ConfirmedAt = &t
		}
		if orderRequestID.Valid {
			reqID := orderRequestID.Int64
			item.OrderRequestID = &reqID
		}
		orders = append(orders, item)
	}
	return orders, rows.Err()
}

// CreateFromRequest converts an order request into a pending order,
// reserving available stock for every requested line.
func (r *OrderRepository) CreateFromRequest(ctx context.Context, orderRequestID int64, userID int64) (*models.Order, error) {
	log.Printf("📦 CreateFromRequest: Converting order request id=%d", orderRequestID)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var clientID int64
	var converted bool
	err = tx.QueryRowContext(ctx,
		`SELECT client_id, converted FROM order_requests WHERE id = $1 FOR UPDATE`, orderRequestID).
		Scan(&clientID, &converted)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order request not found")
		}
		return nil, fmt.Errorf("failed to fetch order request: %w", err)
	}
	if converted {
		return nil, fmt.Errorf("order request already converted into an order")
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_request_products WHERE order_request_id = $1 ORDER BY product_id`, orderRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order request items: %w", err)
	}
	requestItems := []models.OrderRequestItem{}
	for rows.Next() {
		var item models.OrderRequestItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order request item: %w", err)
		}
		requestItems = append(requestItems, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(requestItems) == 0 {
		return nil, fmt.Errorf("order request has no items")
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		INSERT INTO orders (client_id, user_id, date, status, crates, order_request_id)
		VALUES ($1, $2, NOW(), 'pending', 0, $3)
		RETURNING `+orderColumns, clientID, userID, orderRequestID))
	if err != nil {
		log.Printf("❌ CreateFromRequest: Error creating order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	exceeded := &pricing.StockExceededError{}
	for _, item := range requestItems {
		if item.Quantity < 1 {
			return nil, &pricing.ValidationError{Field: "quantity", Message: fmt.Sprintf("product %d: quantity must be at least 1", item.ProductID)}
		}

		var price float64
		var availableStock int
		err := tx.QueryRowContext(ctx,
			`SELECT price, available_stock FROM products WHERE id = $1 FOR UPDATE`, item.ProductID).
			Scan(&price, &availableStock)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("product %d not found", item.ProductID)
			}
			return nil, fmt.Errorf("failed to fetch product %d: %w", item.ProductID, err)
		}
		if availableStock < item.Quantity {
			exceeded.Lines = append(exceeded.Lines, pricing.StockExceededLine{
				ProductID:      item.ProductID,
				Requested:      item.Quantity,
				AvailableStock: availableStock,
			})
			continue
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE products SET available_stock = available_stock - $1 WHERE id = $2`, item.Quantity, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock for product %d: %w", item.ProductID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id, quantity, unit_price, discount)
			VALUES ($1, $2, $3, $4, 0)`, order.ID, item.ProductID, item.Quantity, price)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	if len(exceeded.Lines) > 0 {
		log.Printf("⚠️ CreateFromRequest: Insufficient available stock for %d line(s)", len(exceeded.Lines))
		return nil, exceeded
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE order_requests SET converted = true WHERE id = $1`, orderRequestID); err != nil {
		return nil, fmt.Errorf("failed to mark order request converted: %w", err)
	}

	order.Items, err = fetchOrderItems(ctx, tx, order.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ CreateFromRequest: Created order id=%d with %d item(s)", order.ID, len(order.Items))
	return order, nil
}

// Prepare rewrites the line items of a pending order from the preparation
// screen, shifting stock reservations to the new quantities.
func (r *OrderRepository) Prepare(ctx context.Context, id int64, lines []models.PreparationLineInput, crates int, observations string) (*models.Order, error) {
	log.Printf("📦 Prepare: Preparing order id=%d with %d line(s)", id, len(lines))

	if len(lines) == 0 {
		return nil, &pricing.ValidationError{Field: "lines", Message: "preparation must contain at least one line"}
	}
	if crates < 1 {
		return nil, &pricing.ValidationError{Field: "crates", Message: "crates must be at least 1"}
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if status != models.StatusPending {
		return nil, fmt.Errorf("only pending orders can be prepared (order is %s)", status)
	}

	// current reservations per product
	reserved := map[int64]int{}
	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_products WHERE order_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current order items: %w", err)
	}
	for rows.Next() {
		var productID int64
		var quantity int
		if err := rows.Scan(&productID, &quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		reserved[productID] = quantity
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to clear order items: %w", err)
	}

	seen := map[int64]bool{}
	exceeded := &pricing.StockExceededError{}
	for _, line := range lines {
		if seen[line.ProductID] {
			return nil, &pricing.ValidationError{Field: "lines", Message: fmt.Sprintf("product %d appears more than once", line.ProductID)}
		}
		seen[line.ProductID] = true
		if line.Quantity < 1 {
			return nil, &pricing.ValidationError{Field: "quantity", Message: fmt.Sprintf("product %d: quantity must be at least 1", line.ProductID)}
		}

		var price float64
		var unitType models.UnitType
		var availableStock int
		err := tx.QueryRowContext(ctx,
			`SELECT price, unit_type, available_stock FROM products WHERE id = $1 FOR UPDATE`, line.ProductID).
			Scan(&price, &unitType, &availableStock)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("product %d not found", line.ProductID)
			}
			return nil, fmt.Errorf("failed to fetch product %d: %w", line.ProductID, err)
		}

		// the order's own reservation counts toward what this line may take
		delta := line.Quantity - reserved[line.ProductID]
		if delta > availableStock {
			exceeded.Lines = append(exceeded.Lines, pricing.StockExceededLine{
				ProductID:      line.ProductID,
				Requested:      line.Quantity,
				AvailableStock: availableStock + reserved[line.ProductID],
			})
			continue
		}
		if delta != 0 {
			_, err = tx.ExecContext(ctx,
				`UPDATE products SET available_stock = available_stock - $1 WHERE id = $2`, delta, line.ProductID)
			if err != nil {
				return nil, fmt.Errorf("failed to adjust reservation for product %d: %w", line.ProductID, err)
			}
		}
		delete(reserved, line.ProductID)

		var weight sql.NullFloat64
		if unitType == models.UnitTypeKilo && line.Weight != nil {
			weight = sql.NullFloat64{Float64: *line.Weight, Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id, quantity, unit_price, discount, weight)
			VALUES ($1, $2, $3, $4, 0, $5)`, id, line.ProductID, line.Quantity, price, weight)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	if len(exceeded.Lines) > 0 {
		log.Printf("⚠️ Prepare: Insufficient available stock for %d line(s)", len(exceeded.Lines))
		return nil, exceeded
	}

	// release reservations for lines removed by the preparation
	for productID, quantity := range reserved {
		_, err := tx.ExecContext(ctx,
			`UPDATE products SET available_stock = available_stock + $1 WHERE id = $2`, quantity, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to release reservation for product %d: %w", productID, err)
		}
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		UPDATE orders SET crates = $1, observations = $2 WHERE id = $3
		RETURNING `+orderColumns,
		crates, sql.NullString{String: observations, Valid: observations != ""}, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.Items, err = fetchOrderItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Prepare: Order id=%d prepared with %d line(s), crates=%d", id, len(order.Items), crates)
	return order, nil
}

// Confirm transitions a pending order to confirmed: the best discount for
// each line is resolved and frozen into its unit price, physical stock is
// consumed and the reservation resolved.
func (r *OrderRepository) Confirm(ctx context.Context, id int64) (*models.Order, error) {
	log.Printf("📦 Confirm: Confirming order id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.Status
	var clientID int64
	err = tx.QueryRowContext(ctx,
		`SELECT status, client_id FROM orders WHERE id = $1 FOR UPDATE`, id).
		Scan(&status, &clientID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if err := models.Transition(status, models.StatusConfirmed); err != nil {
		return nil, err
	}

	client, err := scanClient(tx.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client %d: %w", clientID, err)
	}

	candidates, err := listCandidateDiscountsTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	items, err := fetchOrderItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	now := time.Now()
	for _, item := range items {
		product, err := scanProduct(tx.QueryRowContext(ctx,
			`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, item.ProductID))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product %d: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %d: insufficient stock (%d available, %d required)",
				item.ProductID, product.Stock, item.Quantity)
		}

		discountPct := 0.0
		if best := pricing.BestDiscountForQuantity(candidates, product, client, item.Quantity, now); best != nil {
			discountPct = best.Percentage
			log.Printf("✓ Confirm: Product %d gets discount %.2f%% (rule %d)", item.ProductID, discountPct, best.ID)
		}
		effectivePrice := item.UnitPrice * (1 - discountPct/100)

		_, err = tx.ExecContext(ctx, `
			UPDATE order_products SET unit_price = $1, discount = $2 WHERE id = $3`,
			effectivePrice, discountPct, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to freeze price for item %d: %w", item.ID, err)
		}

		// consume physical stock; the reservation on available_stock is
		// already accounted for
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2`, item.Quantity, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to consume stock for product %d: %w", item.ProductID, err)
		}
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		UPDATE orders SET status = 'confirmed', confirmed_at = NOW() WHERE id = $1
		RETURNING `+orderColumns, id))
	if err != nil {
		return nil, fmt.Errorf("failed to confirm order: %w", err)
	}

	order.Items, err = fetchOrderItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("🎉 Confirm: Order id=%d confirmed with %d item(s)", id, len(order.Items))
	return order, nil
}

// listCandidateDiscountsTx mirrors DiscountRepository.ListCandidateDiscounts
// inside the confirmation transaction so the frozen prices see a consistent
// discount snapshot.
func listCandidateDiscountsTx(ctx context.Context, tx *sql.Tx) ([]models.Discount, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+discountColumns+` FROM discounts WHERE status = 'available' AND expiration_date > NOW() ORDER BY id ASC`)
	if err != nil {
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

	for i := range discounts {
		d := &discounts[i]
		if d.ProductScope.Kind == models.ProductScopeList {
			productRows, err := tx.QueryContext(ctx,
				`SELECT product_id FROM discount_products WHERE discount_id = $1`, d.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load discount_products: %w", err)
			}
			for productRows.Next() {
				var productID int64
				if err := productRows.Scan(&productID); err != nil {
					productRows.Close()
					return nil, err
				}
				d.ProductScope.ProductIDs = append(d.ProductScope.ProductIDs, productID)
			}
			productRows.Close()
			if err := productRows.Err(); err != nil {
				return nil, err
			}
		}
		if d.ClientScope.Kind == models.ClientScopeList {
			clientRows, err := tx.QueryContext(ctx,
				`SELECT client_id FROM discount_clients WHERE discount_id = $1`, d.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load discount_clients: %w", err)
			}
			for clientRows.Next() {
				var clientID int64
				if err := clientRows.Scan(&clientID); err != nil {
					clientRows.Close()
					return nil, err
				}
				d.ClientScope.ClientIDs = append(d.ClientScope.ClientIDs, clientID)
			}
			clientRows.Close()
			if err := clientRows.Err(); err != nil {
				return nil, err
			}
		}
	}
	return discounts, nil
}

// Cancel transitions a pending order to cancelled and releases its stock
// reservations.
func (r *OrderRepository) Cancel(ctx context.Context, id int64) (*models.Order, error) {
	log.Printf("📦 Cancel: Cancelling order id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status models.Status
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if err := models.Transition(status, models.StatusCancelled); err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_products WHERE order_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	type reservation struct {
		productID int64
		quantity  int
	}
	reservations := []reservation{}
	for rows.Next() {
		var r reservation
		if err := rows.Scan(&r.productID, &r.quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		reservations = append(reservations, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, res := range reservations {
		_, err := tx.ExecContext(ctx,
			`UPDATE products SET available_stock = available_stock + $1 WHERE id = $2`, res.quantity, res.productID)
		if err != nil {
			return nil, fmt.Errorf("failed to release reservation for product %d: %w", res.productID, err)
		}
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `
		UPDATE orders SET status = 'cancelled' WHERE id = $1
		RETURNING `+orderColumns, id))
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	order.Items, err = fetchOrderItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Cancel: Order id=%d cancelled, reservations released", id)
	return order, nil
}
