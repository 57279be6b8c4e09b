package models

// Brand represents a product brand
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category represents a top-level product category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SubCategory represents a subcategory belonging to a category
type SubCategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

// Zone represents a geographic delivery zone used for client grouping
type Zone struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateNamedRequest is the shared request body for creating brands,
// categories and zones. Example: {"name": "Molinos Río"}
type CreateNamedRequest struct {
	Name string `json:"name"`
}

// CreateSubCategoryRequest represents the request body for creating a subcategory
// Example: {"categoryId": 2, "name": "Harinas"}
type CreateSubCategoryRequest struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}
