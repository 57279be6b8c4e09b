package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/service"
	"distribuidora-backoffice/utils"
)

// UserController handles HTTP requests for back-office users and roles
type UserController struct {
	repository  repository.UserRepositoryInterface
	authService *service.AuthService
}

// NewUserController creates a new UserController
func NewUserController(repo repository.UserRepositoryInterface, authService *service.AuthService) *UserController {
	return &UserController{repository: repo, authService: authService}
}

// List handles GET /admin/users
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := utils.ParsePagination(r.URL.Query())

	users, err := c.repository.List(r.Context(), page, pageSize)
	if err != nil {
		log.Printf("❌ List: Error listing users: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"users":    users,
		"page":     page,
		"pageSize": pageSize,
		"lastPage": utils.IsLastPage(len(users), pageSize),
	})
}

// Create handles POST /admin/users
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.RoleID <= 0 {
		http.Error(w, "roleId is required", http.StatusBadRequest)
		return
	}

	hash, err := c.authService.HashPassword(req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := c.repository.Create(r.Context(), &req, hash)
	if err != nil {
		log.Printf("❌ Create: Error creating user: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Update handles PUT /admin/users/:id
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Update: Received %s request to %s", r.Method, r.URL.Path)

	idStr, _ := pathID(r.URL.Path, "/admin/users/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Update: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	user, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		log.Printf("❌ Update: Error updating user: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Roles handles GET and POST /admin/roles
func (c *UserController) Roles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		roles, err := c.repository.ListRoles(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, roles)
	case http.MethodPost:
		var req models.CreateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		role, err := c.repository.CreateRole(r.Context(), &req)
		if err != nil {
			log.Printf("❌ Roles: Error creating role: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, role)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
