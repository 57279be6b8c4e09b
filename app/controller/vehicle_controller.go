package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
)

// VehicleController handles HTTP requests for the delivery fleet
type VehicleController struct {
	repository repository.VehicleRepositoryInterface
}

// NewVehicleController creates a new VehicleController
func NewVehicleController(repo repository.VehicleRepositoryInterface) *VehicleController {
	return &VehicleController{repository: repo}
}

// List handles GET /admin/vehicles
// Pass activeOnly=true to hide deactivated vehicles.
func (c *VehicleController) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	vehicles, err := c.repository.List(r.Context(), activeOnly)
	if err != nil {
		log.Printf("❌ List: Error listing vehicles: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// Create handles POST /admin/vehicles
func (c *VehicleController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	vehicle, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Create: Error creating vehicle: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

// Update handles PUT /admin/vehicles/:id
// Deactivation is an update with {"active": false}.
func (c *VehicleController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Update: Received %s request to %s", r.Method, r.URL.Path)

	idStr, _ := pathID(r.URL.Path, "/admin/vehicles/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}

	var req models.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Update: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	vehicle, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		log.Printf("❌ Update: Error updating vehicle: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}
