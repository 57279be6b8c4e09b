package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/utils"
)

// DiscountController handles HTTP requests for discount rules. Every
// mutation invalidates the resolver cache, since a rule change can move
// the best discount for any product/client pair.
type DiscountController struct {
	repository repository.DiscountRepositoryInterface
	resolver   *pricing.Resolver
}

// NewDiscountController creates a new DiscountController
func NewDiscountController(repo repository.DiscountRepositoryInterface, resolver *pricing.Resolver) *DiscountController {
	return &DiscountController{repository: repo, resolver: resolver}
}

// List handles GET /admin/discounts
// Optional query params: status, productScopeKind, page, pageSize
func (c *DiscountController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := &models.DiscountFilterParams{}

	if v := query.Get("status"); v != "" {
		status := models.DiscountStatus(v)
		params.Status = &status
	}
	if v := query.Get("productScopeKind"); v != "" {
		kind := models.ProductScopeKind(v)
		params.ProductScopeKind = &kind
	}

	page, pageSize := utils.ParsePagination(query)

	discounts, err := c.repository.List(r.Context(), params, page, pageSize)
	if err != nil {
		log.Printf("❌ List: Error listing discounts: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.DiscountListResponse{
		Discounts: discounts,
		Page:      page,
		PageSize:  pageSize,
		LastPage:  utils.IsLastPage(len(discounts), pageSize),
	})
}

// Create handles POST /admin/discounts
func (c *DiscountController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	discount, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Create: Error creating discount: %v", err)
		respondError(w, err)
		return
	}

	c.resolver.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, discount)
}

// Get handles GET /admin/discounts/:id
func (c *DiscountController) Get(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/discounts/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid discount id", http.StatusBadRequest)
		return
	}

	discount, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, discount)
}

// Update handles PUT /admin/discounts/:id
func (c *DiscountController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Update: Received %s request to %s", r.Method, r.URL.Path)

	idStr, _ := pathID(r.URL.Path, "/admin/discounts/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid discount id", http.StatusBadRequest)
		return
	}

	var req models.UpdateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Update: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	discount, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		log.Printf("❌ Update: Error updating discount: %v", err)
		respondError(w, err)
		return
	}

	c.resolver.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, discount)
}

// SetStatus handles POST /admin/discounts/:id/close and
// POST /admin/discounts/:id/cancel
func (c *DiscountController) SetStatus(w http.ResponseWriter, r *http.Request, status models.DiscountStatus) {
	log.Printf("📥 SetStatus: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/discounts/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid discount id", http.StatusBadRequest)
		return
	}

	discount, err := c.repository.SetStatus(r.Context(), id, status)
	if err != nil {
		log.Printf("❌ SetStatus: Error setting discount status: %v", err)
		respondError(w, err)
		return
	}

	c.resolver.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, discount)
}

// Best handles GET /admin/discounts/best?productId=&clientId=
// Exposes the resolver: the single best applicable discount for a
// product/client pair, or found=false when none applies.
func (c *DiscountController) Best(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	productID, err := strconv.ParseInt(query.Get("productId"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "productId query parameter is required", http.StatusBadRequest)
		return
	}
	clientID, err := strconv.ParseInt(query.Get("clientId"), 10, 64)
	if err != nil || clientID <= 0 {
		http.Error(w, "clientId query parameter is required", http.StatusBadRequest)
		return
	}

	discount, err := c.resolver.Resolve(r.Context(), productID, clientID)
	if err != nil {
		log.Printf("❌ Best: Error resolving discount: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.BestDiscountResponse{
		Found:    discount != nil,
		Discount: discount,
	})
}
