package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/app/middleware"
	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/utils"
)

// ReturnRequestController handles HTTP requests for merchandise returns.
// Confirm and Cancel share the order controller's in-flight discipline.
type ReturnRequestController struct {
	repository repository.ReturnRequestRepositoryInterface
	guard      *utils.InflightGuard
}

// NewReturnRequestController creates a new ReturnRequestController
func NewReturnRequestController(repo repository.ReturnRequestRepositoryInterface) *ReturnRequestController {
	return &ReturnRequestController{
		repository: repo,
		guard:      utils.NewInflightGuard(),
	}
}

// List handles GET /admin/return-requests
func (c *ReturnRequestController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := utils.ParsePagination(r.URL.Query())

	requests, err := c.repository.List(r.Context(), page, pageSize)
	if err != nil {
		log.Printf("❌ List: Error listing return requests: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ReturnRequestListResponse{
		ReturnRequests: requests,
		Page:           page,
		PageSize:       pageSize,
		LastPage:       utils.IsLastPage(len(requests), pageSize),
	})
}

// Create handles POST /admin/return-requests
func (c *ReturnRequestController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateReturnRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.OrderID <= 0 {
		http.Error(w, "orderId is required", http.StatusBadRequest)
		return
	}

	auth := middleware.AuthContextFrom(r.Context())
	if auth == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	returnRequest, err := c.repository.Create(r.Context(), auth.UserID, &req)
	if err != nil {
		log.Printf("❌ Create: Error creating return request: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, returnRequest)
}

// Get handles GET /admin/return-requests/:id
func (c *ReturnRequestController) Get(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/return-requests/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid return request id", http.StatusBadRequest)
		return
	}

	returnRequest, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, returnRequest)
}

// Confirm handles POST /admin/return-requests/:id/confirm
func (c *ReturnRequestController) Confirm(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Confirm: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/return-requests/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid return request id", http.StatusBadRequest)
		return
	}

	if err := c.guard.Acquire("return-request", id); err != nil {
		log.Printf("⚠️ Confirm: %v", err)
		respondJSON(w, http.StatusConflict, map[string]interface{}{"error": err.Error()})
		return
	}
	defer c.guard.Release("return-request", id)

	returnRequest, err := c.repository.Confirm(r.Context(), id)
	if err != nil {
		log.Printf("❌ Confirm: Error confirming return request: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Confirm: Return request id=%d confirmed", id)
	respondJSON(w, http.StatusOK, returnRequest)
}

// Cancel handles POST /admin/return-requests/:id/cancel
func (c *ReturnRequestController) Cancel(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Cancel: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/admin/return-requests/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid return request id", http.StatusBadRequest)
		return
	}

	if err := c.guard.Acquire("return-request", id); err != nil {
		log.Printf("⚠️ Cancel: %v", err)
		respondJSON(w, http.StatusConflict, map[string]interface{}{"error": err.Error()})
		return
	}
	defer c.guard.Release("return-request", id)

	returnRequest, err := c.repository.Cancel(r.Context(), id)
	if err != nil {
		log.Printf("❌ Cancel: Error cancelling return request: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("✅ Cancel: Return request id=%d cancelled", id)
	respondJSON(w, http.StatusOK, returnRequest)
}
