package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/app/middleware"
	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/utils"
)

// OrderController handles HTTP requests for sales orders. Confirm and
// Cancel are guarded: while a transition request for an order is in
// flight, a second one is refused with 409.
type OrderController struct {
	repository       repository.OrderRepositoryInterface
	orderRequestRepo repository.OrderRequestRepositoryInterface
	productRepo      repository.ProductRepositoryInterface
	resolver         *pricing.Resolver
	guard            *utils.InflightGuard
}

// NewOrderController creates a new OrderController
func NewOrderController(
	repo repository.OrderRepositoryInterface,
	orderRequestRepo repository.OrderRequestRepositoryInterface,
	productRepo repository.ProductRepositoryInterface,
	resolver *pricing.Resolver,
) *OrderController {
	return &OrderController{
		repository:       repo,
		orderRequestRepo: orderRequestRepo,
		productRepo:      productRepo,
		resolver:         resolver,
		guard:            utils.NewInflightGuard(),
	}
}

// List handles GET /admin/orders
// Optional query params: status, clientId, dateFrom, dateTo, page, pageSize
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := &models.OrderFilterParams{}

	if v := query.Get("status"); v != "" {
		status, err := models.ParseStatus(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		params.Status = &status
	}
	if v := query.Get("clientId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "clientId must be a number", http.StatusBadRequest)
			return
		}
		params.ClientID = &id
	}
	if v := query.Get("dateFrom"); v != "" {
		params.DateFrom = &v
	}
	if v := query.Get("dateTo"); v != "" {
		params.DateTo = &v
	}

	page, pageSize := utils.ParsePagination(query)

	orders, err := c.repository.List(r.Context(), params, page, pageSize)
	if err != nil {
		log.Printf("❌ List: Error listing orders: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.OrderListResponse{
		Orders:   orders,
		Page:     page,
		PageSize: pageSize,
		LastPage: utils.IsLastPage(len(orders), pageSize),
	})
}

// Get handles GET /admin/orders/:id
// Returns the order with its full pricing breakdown. For pending orders
// the discount is resolved live per line; for confirmed or cancelled ones
// the stored frozen prices are decomposed.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/orders/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	lines := make([]models.LinePrice, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]

		resolvedPct := 0.0
		if order.Status == models.StatusPending {
			// same quantity-qualified selection the confirmation freezes
			discount, err := c.resolver.ResolveForQuantity(r.Context(), item.ProductID, order.ClientID, item.Quantity)
			if err != nil {
				log.Printf("❌ Get: Discount lookup failed for product %d: %v", item.ProductID, err)
				respondError(w, err)
				return
			}
			if discount != nil {
				resolvedPct = discount.Percentage
			}
		}

		line, err := pricing.PriceLine(item, order.Status, resolvedPct)
		if err != nil {
			log.Printf("❌ Get: Error pricing line for product %d: %v", item.ProductID, err)
			respondError(w, err)
			return
		}
		lines = append(lines, line)
	}

	respondJSON(w, http.StatusOK, models.PricedOrderResponse{
		Order:   order,
		Pricing: pricing.OrderTotals(lines),
	})
}

// CreateFromRequest handles POST /admin/orders/from-request/:orderRequestId
// Converts an order request into a pending order, reserving available stock.
func (c *OrderController) CreateFromRequest(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateFromRequest: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/orders/from-request/")
	orderRequestID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order request id", http.StatusBadRequest)
		return
	}

	auth := middleware.AuthContextFrom(r.Context())
	if auth == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, err := c.repository.CreateFromRequest(r.Context(), orderRequestID, auth.UserID)
	if err != nil {
		log.Printf("❌ CreateFromRequest: Error creating order: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// GetPreparation handles GET /admin/orders/:id/preparation
// Builds the preparation screen for a pending order: the union of
// originally requested lines and the order's current lines, with stock.
func (c *OrderController) GetPreparation(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/orders/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if order.Status != models.StatusPending {
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error": fmt.Sprintf("only pending orders can be prepared (order is %s)", order.Status),
		})
		return
	}

	var requestItems []models.OrderRequestItem
	if order.OrderRequestID != nil {
		orderRequest, err := c.orderRequestRepo.GetByID(r.Context(), *order.OrderRequestID)
		if err != nil {
			respondError(w, err)
			return
		}
		requestItems = orderRequest.Items
	}

	products, err := c.loadProducts(r, requestItems, order.Items)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.PreparationResponse{
		OrderID: order.ID,
		Lines:   pricing.Reconcile(requestItems, order.Items, products),
		Crates:  order.Crates,
	})
}

func (c *OrderController) loadProducts(r *http.Request, requestItems []models.OrderRequestItem, orderItems []models.OrderProductItem) (map[int64]*models.Product, error) {
	products := map[int64]*models.Product{}
	load := func(productID int64) error {
		if _, ok := products[productID]; ok {
			return nil
		}
		product, err := c.productRepo.GetByID(r.Context(), productID)
		if err != nil {
			return fmt.Errorf("product %d: %w", productID, err)
		}
		products[productID] = product
		return nil
	}

	for _, item := range requestItems {
		if err := load(item.ProductID); err != nil {
			return nil, err
		}
	}
	for _, item := range orderItems {
		if err := load(item.ProductID); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// Prepare handles PUT /admin/orders/:id/prepare
// Validates the submitted preparation and rewrites the order's lines and
// crates while it is still pending.
func (c *OrderController) Prepare(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Prepare: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/orders/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	var req models.PrepareOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Prepare: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	// reservation already held by this order counts as available to it
	reserved := map[int64]int{}
	for _, item := range order.Items {
		reserved[item.ProductID] = item.Quantity
	}

	lines := make([]models.PreparationLine, 0, len(req.Lines))
	for _, input := range req.Lines {
		product, err := c.productRepo.GetByID(r.Context(), input.ProductID)
		if err != nil {
			respondError(w, err)
			return
		}
		line := models.PreparationLine{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitType:       product.UnitType,
			ActualQuantity: input.Quantity,
			Stock:          product.Stock,
			AvailableStock: product.AvailableStock + reserved[product.ID],
		}
		if product.UnitType == models.UnitTypeKilo {
			line.Weight = input.Weight
		}
		lines = append(lines, line)
	}

	if err := pricing.ValidatePreparation(lines, req.Crates); err != nil {
		log.Printf("❌ Prepare: Validation failed: %v", err)
		respondError(w, err)
		return
	}

	updated, err := c.repository.Prepare(r.Context(), id, pricing.SubmitPreparation(lines), req.Crates, req.Observations)
	if err != nil {
		log.Printf("❌ Prepare: Error preparing order: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Prepare: Order id=%d prepared", id)
	respondJSON(w, http.StatusOK, updated)
}

// Confirm handles POST /admin/orders/:id/confirm
func (c *OrderController) Confirm(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Confirm: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/orders/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	if err := c.guard.Acquire("order", id); err != nil {
		log.Printf("⚠️ Confirm: %v", err)
		respondJSON(w, http.StatusConflict, map[string]interface{}{"error": err.Error()})
		return
	}
	defer c.guard.Release("order", id)

	order, err := c.repository.Confirm(r.Context(), id)
	if err != nil {
		log.Printf("❌ Confirm: Error confirming order: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Confirm: Order id=%d confirmed", id)
	respondJSON(w, http.StatusOK, order)
}

// Cancel handles POST /admin/orders/:id/cancel
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Cancel: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/orders/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	if err := c.guard.Acquire("order", id); err != nil {
		log.Printf("⚠️ Cancel: %v", err)
		respondJSON(w, http.StatusConflict, map[string]interface{}{"error": err.Error()})
		return
	}
	defer c.guard.Release("order", id)

	order, err := c.repository.Cancel(r.Context(), id)
	if err != nil {
		log.Printf("❌ Cancel: Error cancelling order: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Cancel: Order id=%d cancelled", id)
	respondJSON(w, http.StatusOK, order)
}

// GetOrderRequest handles GET /admin/order-requests/:id
func (c *OrderController) GetOrderRequest(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/order-requests/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid order request id", http.StatusBadRequest)
		return
	}

	orderRequest, err := c.orderRequestRepo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderRequest)
}
