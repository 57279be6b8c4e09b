package router

import (
	"net/http"
	"strings"

	"distribuidora-backoffice/app/controller"
	"distribuidora-backoffice/app/middleware"
	"distribuidora-backoffice/models"
	"distribuidora-backoffice/service"
)

type Controllers struct {
	Auth          *controller.AuthController
	Product       *controller.ProductController
	Reference     *controller.ReferenceController
	Client        *controller.ClientController
	Discount      *controller.DiscountController
	Order         *controller.OrderController
	ReturnRequest *controller.ReturnRequestController
	User          *controller.UserController
	Vehicle       *controller.VehicleController
	Catalog       *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers, authService *service.AuthService) {
	// secured wraps a handler with token auth plus a permission check
	secured := func(perm string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.Authenticate(authService, middleware.RequirePermission(perm, h))
	}

	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Login (no auth)
	http.HandleFunc("/admin/login", controllers.Auth.Login)

	// Products routes
	http.HandleFunc("/admin/products", secured(models.PermProducts, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Product.Filter(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Product.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Drive image sync (must be before the generic /:id route)
	http.HandleFunc("/admin/products/images/sync", secured(models.PermProducts, controllers.Product.SyncImages))

	http.HandleFunc("/admin/products/", secured(models.PermProducts, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/products/")
		if strings.HasSuffix(path, "/image") {
			controllers.Product.GetOptimizedImage(w, r)
			return
		}
		if r.Method == http.MethodGet {
			controllers.Product.Get(w, r)
		} else if r.Method == http.MethodPut {
			controllers.Product.Update(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Reference data routes
	http.HandleFunc("/admin/brands", secured(models.PermProducts, controllers.Reference.Brands))
	http.HandleFunc("/admin/categories", secured(models.PermProducts, controllers.Reference.Categories))
	http.HandleFunc("/admin/subcategories", secured(models.PermProducts, controllers.Reference.SubCategories))
	http.HandleFunc("/admin/zones", secured(models.PermProducts, controllers.Reference.Zones))

	// Clients routes
	http.HandleFunc("/admin/clients", secured(models.PermProducts, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Client.Filter(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Client.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	http.HandleFunc("/admin/clients/", secured(models.PermProducts, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Client.Get(w, r)
		} else if r.Method == http.MethodPut {
			controllers.Client.Update(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Discounts routes
	http.HandleFunc("/admin/discounts", secured(models.PermDiscounts, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Discount.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Discount.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Best-discount lookup (must be before the generic /:id route)
	http.HandleFunc("/admin/discounts/best", secured(models.PermDiscounts, controllers.Discount.Best))

	http.HandleFunc("/admin/discounts/", secured(models.PermDiscounts, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/discounts/")
		if strings.HasSuffix(path, "/close") {
			controllers.Discount.SetStatus(w, r, models.DiscountClosed)
			return
		}
		if strings.HasSuffix(path, "/cancel") {
			controllers.Discount.SetStatus(w, r, models.DiscountCancelled)
			return
		}
		if r.Method == http.MethodGet {
			controllers.Discount.Get(w, r)
		} else if r.Method == http.MethodPut {
			controllers.Discount.Update(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Orders routes
	http.HandleFunc("/admin/orders", secured(models.PermOrders, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Order.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Convert an order request into an order (must be before /:id)
	http.HandleFunc("/admin/orders/from-request/", secured(models.PermOrders, controllers.Order.CreateFromRequest))

	http.HandleFunc("/admin/orders/", secured(models.PermOrders, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/orders/")
		if strings.HasSuffix(path, "/preparation") {
			controllers.Order.GetPreparation(w, r)
			return
		}
		if strings.HasSuffix(path, "/prepare") {
			controllers.Order.Prepare(w, r)
			return
		}
		if strings.HasSuffix(path, "/confirm") {
			controllers.Order.Confirm(w, r)
			return
		}
		if strings.HasSuffix(path, "/cancel") {
			controllers.Order.Cancel(w, r)
			return
		}
		if r.Method == http.MethodGet {
			controllers.Order.Get(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	// Order requests (preparation baseline)
	http.HandleFunc("/admin/order-requests/", secured(models.PermOrders, controllers.Order.GetOrderRequest))

	// Return requests routes
	http.HandleFunc("/admin/return-requests", secured(models.PermReturns, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.ReturnRequest.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.ReturnRequest.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	http.HandleFunc("/admin/return-requests/", secured(models.PermReturns, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/return-requests/")
		if strings.HasSuffix(path, "/confirm") {
			controllers.ReturnRequest.Confirm(w, r)
			return
		}
		if strings.HasSuffix(path, "/cancel") {
			controllers.ReturnRequest.Cancel(w, r)
			return
		}
		if r.Method == http.MethodGet {
			controllers.ReturnRequest.Get(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	// Users and roles routes
	http.HandleFunc("/admin/users", secured(models.PermUsers, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.User.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.User.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	http.HandleFunc("/admin/users/", secured(models.PermUsers, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			controllers.User.Update(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	http.HandleFunc("/admin/roles", secured(models.PermUsers, controllers.User.Roles))

	// Vehicles routes
	http.HandleFunc("/admin/vehicles", secured(models.PermVehicles, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.Vehicle.List(w, r)
		} else if r.Method == http.MethodPost {
			controllers.Vehicle.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))
	http.HandleFunc("/admin/vehicles/", secured(models.PermVehicles, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			controllers.Vehicle.Update(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Catalog routes. The render target is navigated by headless Chrome
	// without a bearer token; it stays bound to the local server.
	http.HandleFunc("/admin/catalog", secured(models.PermCatalog, controllers.Catalog.Get))
	http.HandleFunc("/admin/catalog/render", controllers.Catalog.Render)
}
