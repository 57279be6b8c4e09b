package models

// UnitType indicates how a product is sold: by unit or by weight (kilo)
type UnitType string

const (
	UnitTypeUnit UnitType = "unit"
	UnitTypeKilo UnitType = "kilo"
)

// Product represents a product in the database.
// Stock and AvailableStock are distinct: AvailableStock accounts for
// quantities already reserved by pending orders.
type Product struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	UnitType       UnitType `json:"unitType"` // "unit" or "kilo"
	Price          float64  `json:"price"`
	Stock          int      `json:"stock"`
	AvailableStock int      `json:"availableStock"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	DriveFileID    string   `json:"-"`
	InternalCode   string   `json:"internalCode"`
	Barcode        string   `json:"barcode,omitempty"`
	BrandID        int64    `json:"brandId"`
	SubCategoryID  int64    `json:"subCategoryId"`
	Active         bool     `json:"active"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// CreateProductRequest represents the request body for creating a product
// Example: {"name": "Harina 000 x 1kg", "unitType": "unit", "price": 1250.50, "stock": 200, "internalCode": "HAR-000-1", "barcode": "7790001234567", "brandId": 3, "subCategoryId": 12}
type CreateProductRequest struct {
	Name          string   `json:"name"`
	UnitType      UnitType `json:"unitType"`
	Price         float64  `json:"price"`
	Stock         int      `json:"stock"`
	InternalCode  string   `json:"internalCode"`
	Barcode       string   `json:"barcode,omitempty"`
	BrandID       int64    `json:"brandId"`
	SubCategoryID int64    `json:"subCategoryId"`
}

// UpdateProductRequest represents the request body for updating a product.
// Pointer fields are only applied when present in the payload.
type UpdateProductRequest struct {
	Name          *string   `json:"name,omitempty"`
	UnitType      *UnitType `json:"unitType,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	Stock         *int      `json:"stock,omitempty"`
	InternalCode  *string   `json:"internalCode,omitempty"`
	Barcode       *string   `json:"barcode,omitempty"`
	BrandID       *int64    `json:"brandId,omitempty"`
	SubCategoryID *int64    `json:"subCategoryId,omitempty"`
	Active        *bool     `json:"active,omitempty"`
}

// ProductFilterParams represents optional filter parameters for products
type ProductFilterParams struct {
	Name          *string
	InternalCode  *string
	Barcode       *string
	BrandID       *int64
	SubCategoryID *int64
	ActiveOnly    bool
}

// ProductListResponse represents the response for listing products
// Example response:
//
//	{
//	  "products": [
//	    {
//	      "id": 1,
//	      "name": "Harina 000 x 1kg",
//	      "unitType": "unit",
//	      "price": 1250.5,
//	      "stock": 200,
//	      "availableStock": 185,
//	      "internalCode": "HAR-000-1",
//	      "brandId": 3,
//	      "subCategoryId": 12,
//	      "active": true
//	    }
//	  ],
//	  "page": 1,
//	  "pageSize": 20,
//	  "lastPage": false
//	}
type ProductListResponse struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	LastPage bool      `json:"lastPage"`
}
