package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/utils"
)

// ClientController handles HTTP requests for clients
type ClientController struct {
	repository repository.ClientRepositoryInterface
}

// NewClientController creates a new ClientController
func NewClientController(repo repository.ClientRepositoryInterface) *ClientController {
	return &ClientController{repository: repo}
}

// Filter handles GET /admin/clients
// Optional query params: name, zoneId, page, pageSize
func (c *ClientController) Filter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := &models.ClientFilterParams{}

	if v := query.Get("name"); v != "" {
		params.Name = &v
	}
	if v := query.Get("zoneId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "zoneId must be a number", http.StatusBadRequest)
			return
		}
		params.ZoneID = &id
	}

	page, pageSize := utils.ParsePagination(query)

	clients, err := c.repository.Filter(r.Context(), params, page, pageSize)
	if err != nil {
		log.Printf("❌ Filter: Error filtering clients: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ClientListResponse{
		Clients:  clients,
		Page:     page,
		PageSize: pageSize,
		LastPage: utils.IsLastPage(len(clients), pageSize),
	})
}

// Create handles POST /admin/clients
func (c *ClientController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	client, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Create: Error creating client: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

// Get handles GET /admin/clients/:id
func (c *ClientController) Get(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/clients/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}

	client, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// Update handles PUT /admin/clients/:id
func (c *ClientController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Update: Received %s request to %s", r.Method, r.URL.Path)

	idStr, _ := pathID(r.URL.Path, "/admin/clients/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid client id", http.StatusBadRequest)
		return
	}

	var req models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Update: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	client, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		log.Printf("❌ Update: Error updating client: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}
