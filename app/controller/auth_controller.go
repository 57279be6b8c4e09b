package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/service"
)

// AuthController handles HTTP requests for authentication
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login handles POST /admin/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	response, err := c.authService.Login(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Login: Failed for %s: %v", req.Email, err)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	respondJSON(w, http.StatusOK, response)
}
