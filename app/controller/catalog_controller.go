package controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"distribuidora-backoffice/service"
)

// CatalogController handles HTTP requests for the client price list catalog
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// Get handles GET /admin/catalog?clientId=&format=pdf|html|json
// Returns the price list with the client's effective prices.
func (c *CatalogController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Catalog: Received %s request to %s", r.Method, r.URL.Path)

	clientID, err := strconv.ParseInt(r.URL.Query().Get("clientId"), 10, 64)
	if err != nil || clientID <= 0 {
		http.Error(w, "clientId query parameter is required", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}

	switch format {
	case "json":
		items, err := c.catalogService.GetClientCatalog(r.Context(), clientID)
		if err != nil {
			log.Printf("❌ Catalog: Error building catalog: %v", err)
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, items)

	case "html":
		html, err := c.catalogService.RenderCatalogHTML(r.Context(), clientID, true)
		if err != nil {
			log.Printf("❌ Catalog: Error rendering catalog: %v", err)
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))

	case "pdf":
		pdf, err := c.catalogService.GeneratePDF(r.Context(), clientID)
		if err != nil {
			log.Printf("❌ Catalog: Error generating PDF: %v", err)
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="catalogo-cliente-%d.pdf"`, clientID))
		w.Write(pdf)

	default:
		http.Error(w, "format must be 'pdf', 'html' or 'json'", http.StatusBadRequest)
	}
}

// Render handles GET /admin/catalog/render?clientId=
// Internal render target navigated by headless Chrome during PDF
// generation; images stay as URLs so Chrome loads them itself.
func (c *CatalogController) Render(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(r.URL.Query().Get("clientId"), 10, 64)
	if err != nil || clientID <= 0 {
		http.Error(w, "clientId query parameter is required", http.StatusBadRequest)
		return
	}

	html, err := c.catalogService.RenderCatalogHTML(r.Context(), clientID, false)
	if err != nil {
		log.Printf("❌ Render: Error rendering catalog: %v", err)
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
