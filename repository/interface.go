package repository

import (
	"context"

	"distribuidora-backoffice/models"
)

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetByInternalCode(ctx context.Context, code string) (*models.Product, error)
	Filter(ctx context.Context, params *models.ProductFilterParams, page, pageSize int) ([]models.Product, error)
	SetImage(ctx context.Context, id int64, driveFileID, imageURL string) error
	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
}

// ReferenceRepositoryInterface defines the contract for reference data
// (brands, categories, subcategories, zones)
type ReferenceRepositoryInterface interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	CreateBrand(ctx context.Context, name string) (*models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	ListSubCategories(ctx context.Context, categoryID *int64) ([]models.SubCategory, error)
	CreateSubCategory(ctx context.Context, categoryID int64, name string) (*models.SubCategory, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	CreateZone(ctx context.Context, name string) (*models.Zone, error)
}

// ClientRepositoryInterface defines the contract for client repository operations
type ClientRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error)
	Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	Filter(ctx context.Context, params *models.ClientFilterParams, page, pageSize int) ([]models.Client, error)
}

// DiscountRepositoryInterface defines the contract for discount repository operations
type DiscountRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateDiscountRequest) (*models.Discount, error)
	Update(ctx context.Context, id int64, req *models.UpdateDiscountRequest) (*models.Discount, error)
	GetByID(ctx context.Context, id int64) (*models.Discount, error)
	List(ctx context.Context, params *models.DiscountFilterParams, page, pageSize int) ([]models.Discount, error)
	SetStatus(ctx context.Context, id int64, status models.DiscountStatus) (*models.Discount, error)
	ListCandidateDiscounts(ctx context.Context) ([]models.Discount, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, params *models.OrderFilterParams, page, pageSize int) ([]models.OrderListItem, error)
	CreateFromRequest(ctx context.Context, orderRequestID int64, userID int64) (*models.Order, error)
	Prepare(ctx context.Context, id int64, lines []models.PreparationLineInput, crates int, observations string) (*models.Order, error)
	Confirm(ctx context.Context, id int64) (*models.Order, error)
	Cancel(ctx context.Context, id int64) (*models.Order, error)
}

// OrderRequestRepositoryInterface defines the contract for order request lookups
type OrderRequestRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*models.OrderRequest, error)
}

// ReturnRequestRepositoryInterface defines the contract for return request operations
type ReturnRequestRepositoryInterface interface {
	Create(ctx context.Context, userID int64, req *models.CreateReturnRequestRequest) (*models.ReturnRequest, error)
	GetByID(ctx context.Context, id int64) (*models.ReturnRequest, error)
	List(ctx context.Context, page, pageSize int) ([]models.ReturnRequest, error)
	Confirm(ctx context.Context, id int64) (*models.ReturnRequest, error)
	Cancel(ctx context.Context, id int64) (*models.ReturnRequest, error)
}

// UserRepositoryInterface defines the contract for user and role operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error)
	Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page, pageSize int) ([]models.User, error)
	GetRole(ctx context.Context, id int64) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	CreateRole(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error)
}

// VehicleRepositoryInterface defines the contract for vehicle repository operations
type VehicleRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error)
	Update(ctx context.Context, id int64, req *models.UpdateVehicleRequest) (*models.Vehicle, error)
	List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error)
}

// CatalogRepositoryInterface defines the contract for catalog queries
type CatalogRepositoryInterface interface {
	GetCatalogItems(ctx context.Context) ([]models.CatalogItem, error)
}
