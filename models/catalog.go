package models

// CatalogItem represents a product row of the client price list catalog
type CatalogItem struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	InternalCode    string  `json:"internalCode"`
	BrandName       string  `json:"brandName,omitempty"`
	SubCategoryName string  `json:"subCategoryName,omitempty"`
	ListPrice       float64 `json:"listPrice"`
	EffectivePrice  float64 `json:"effectivePrice"`
	DiscountPercent float64 `json:"discountPercent"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	ImageBase64     string  `json:"-"`
}
