package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/service"
	"distribuidora-backoffice/utils"
)

// ProductController handles HTTP requests for products
type ProductController struct {
	repository   repository.ProductRepositoryInterface
	syncService  service.SyncServiceInterface
	driveService service.DriveServiceInterface
}

// NewProductController creates a new ProductController
func NewProductController(
	repo repository.ProductRepositoryInterface,
	syncService service.SyncServiceInterface,
	driveService service.DriveServiceInterface,
) *ProductController {
	return &ProductController{
		repository:   repo,
		syncService:  syncService,
		driveService: driveService,
	}
}

// Filter handles GET /admin/products
// Optional query params: name, internalCode, barcode, brandId, subCategoryId, page, pageSize
func (c *ProductController) Filter(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Filter: Received %s request to %s", r.Method, r.URL.Path)

	query := r.URL.Query()
	params := &models.ProductFilterParams{}

	if v := query.Get("name"); v != "" {
		params.Name = &v
	}
	if v := query.Get("internalCode"); v != "" {
		params.InternalCode = &v
	}
	if v := query.Get("barcode"); v != "" {
		params.Barcode = &v
	}
	if v := query.Get("brandId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "brandId must be a number", http.StatusBadRequest)
			return
		}
		params.BrandID = &id
	}
	if v := query.Get("subCategoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "subCategoryId must be a number", http.StatusBadRequest)
			return
		}
		params.SubCategoryID = &id
	}
	params.ActiveOnly = query.Get("includeInactive") != "true"

	page, pageSize := utils.ParsePagination(query)

	products, err := c.repository.Filter(r.Context(), params, page, pageSize)
	if err != nil {
		log.Printf("❌ Filter: Error filtering products: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ProductListResponse{
		Products: products,
		Page:     page,
		PageSize: pageSize,
		LastPage: utils.IsLastPage(len(products), pageSize),
	})
}

// Create handles POST /admin/products
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Create: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	product, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Create: Error creating product: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// Get handles GET /admin/products/:id
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/products/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Update handles PUT /admin/products/:id
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Update: Received %s request to %s", r.Method, r.URL.Path)

	idStr, _ := pathID(r.URL.Path, "/admin/products/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Update: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	product, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		log.Printf("❌ Update: Error updating product: %v", err)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// GetOptimizedImage handles GET /admin/products/:id/image?size=thumb|medium|catalog
// Serves the product image from the local cache, downloading and optimizing
// it from Drive on first access.
func (c *ProductController) GetOptimizedImage(w http.ResponseWriter, r *http.Request) {
	idStr, _ := pathID(r.URL.Path, "/admin/products/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}
	if !service.ValidImageSize(size) {
		http.Error(w, "size must be 'thumb', 'medium' or 'catalog'", http.StatusBadRequest)
		return
	}

	cachePath := service.GetCachePath(id, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.Write(data)
			return
		}
		log.Printf("⚠️ GetOptimizedImage: Cache read failed, regenerating: %v", err)
	}

	product, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if product.DriveFileID == "" {
		http.Error(w, "Product has no image", http.StatusNotFound)
		return
	}
	if c.driveService == nil {
		http.Error(w, "Image storage is not configured", http.StatusServiceUnavailable)
		return
	}

	raw, err := c.driveService.DownloadImage(product.DriveFileID)
	if err != nil {
		log.Printf("❌ GetOptimizedImage: Error downloading image for product %d: %v", id, err)
		respondError(w, err)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		log.Printf("❌ GetOptimizedImage: Error optimizing image for product %d: %v", id, err)
		respondError(w, err)
		return
	}

	if err := service.SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️ GetOptimizedImage: Failed to cache image: %v", err)
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(optimized)
}

// SyncImages handles POST /admin/products/images/sync?folderId=...
// Links Drive images to products by the internal code in the filename.
func (c *ProductController) SyncImages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncImages: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c.syncService == nil {
		http.Error(w, "Image storage is not configured", http.StatusServiceUnavailable)
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		http.Error(w, "folderId query parameter is required", http.StatusBadRequest)
		return
	}

	stats, err := c.syncService.SyncProductImages(r.Context(), folderID)
	if err != nil {
		log.Printf("❌ SyncImages: Sync failed: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
