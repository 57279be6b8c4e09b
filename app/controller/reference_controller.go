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

// ReferenceController handles HTTP requests for brands, categories,
// subcategories and zones
type ReferenceController struct {
	repository repository.ReferenceRepositoryInterface
}

// NewReferenceController creates a new ReferenceController
func NewReferenceController(repo repository.ReferenceRepositoryInterface) *ReferenceController {
	return &ReferenceController{repository: repo}
}

// Brands handles GET and POST /admin/brands
func (c *ReferenceController) Brands(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		brands, err := c.repository.ListBrands(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, brands)
	case http.MethodPost:
		var req models.CreateNamedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		brand, err := c.repository.CreateBrand(r.Context(), req.Name)
		if err != nil {
			log.Printf("❌ Brands: Error creating brand: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, brand)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Categories handles GET and POST /admin/categories
func (c *ReferenceController) Categories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := c.repository.ListCategories(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, categories)
	case http.MethodPost:
		var req models.CreateNamedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		category, err := c.repository.CreateCategory(r.Context(), req.Name)
		if err != nil {
			log.Printf("❌ Categories: Error creating category: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, category)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// SubCategories handles GET and POST /admin/subcategories
// GET accepts an optional categoryId query parameter.
func (c *ReferenceController) SubCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var categoryID *int64
		if v := r.URL.Query().Get("categoryId"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "categoryId must be a number", http.StatusBadRequest)
				return
			}
			categoryID = &id
		}
		subCategories, err := c.repository.ListSubCategories(r.Context(), categoryID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, subCategories)
	case http.MethodPost:
		var req models.CreateSubCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if req.CategoryID <= 0 {
			http.Error(w, "categoryId is required", http.StatusBadRequest)
			return
		}
		subCategory, err := c.repository.CreateSubCategory(r.Context(), req.CategoryID, req.Name)
		if err != nil {
			log.Printf("❌ SubCategories: Error creating subcategory: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, subCategory)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Zones handles GET and POST /admin/zones
func (c *ReferenceController) Zones(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		zones, err := c.repository.ListZones(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, zones)
	case http.MethodPost:
		var req models.CreateNamedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		zone, err := c.repository.CreateZone(r.Context(), req.Name)
		if err != nil {
			log.Printf("❌ Zones: Error creating zone: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, zone)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
