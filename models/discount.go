package models

import (
	"fmt"
	"time"
)

// DiscountStatus represents the lifecycle status of a discount rule
type DiscountStatus string

const (
	DiscountAvailable DiscountStatus = "available"
	DiscountClosed    DiscountStatus = "closed"
	DiscountCancelled DiscountStatus = "cancelled"
)

// ProductScopeKind discriminates the product applicability of a discount
type ProductScopeKind string

const (
	ProductScopeAll         ProductScopeKind = "all"
	ProductScopeBrand       ProductScopeKind = "brand"
	ProductScopeSubCategory ProductScopeKind = "subcategory"
	ProductScopeList        ProductScopeKind = "products"
)

// ProductScope represents which products a discount applies to.
// Exactly one mode is set, discriminated by Kind; "all" is the default.
type ProductScope struct {
	Kind          ProductScopeKind `json:"kind"`
	BrandID       int64            `json:"brandId,omitempty"`
	SubCategoryID int64            `json:"subCategoryId,omitempty"`
	ProductIDs    []int64          `json:"productIds,omitempty"`
}

// Validate checks that the scope fields are consistent with its Kind
func (s ProductScope) Validate() error {
	switch s.Kind {
	case "", ProductScopeAll:
		return nil
	case ProductScopeBrand:
		if s.BrandID <= 0 {
			return fmt.Errorf("product scope kind 'brand' requires brandId")
		}
	case ProductScopeSubCategory:
		if s.SubCategoryID <= 0 {
			return fmt.Errorf("product scope kind 'subcategory' requires subCategoryId")
		}
	case ProductScopeList:
		if len(s.ProductIDs) == 0 {
			return fmt.Errorf("product scope kind 'products' requires a non-empty productIds list")
		}
	default:
		return fmt.Errorf("unknown product scope kind: %s", s.Kind)
	}
	return nil
}

// Matches reports whether the scope applies to the given product
func (s ProductScope) Matches(p *Product) bool {
	switch s.Kind {
	case "", ProductScopeAll:
		return true
	case ProductScopeBrand:
		return p.BrandID == s.BrandID
	case ProductScopeSubCategory:
		return p.SubCategoryID == s.SubCategoryID
	case ProductScopeList:
		for _, id := range s.ProductIDs {
			if id == p.ID {
				return true
			}
		}
	}
	return false
}

// ClientScopeKind discriminates the client applicability of a discount
type ClientScopeKind string

const (
	ClientScopeAll  ClientScopeKind = "all"
	ClientScopeZone ClientScopeKind = "zone"
	ClientScopeList ClientScopeKind = "clients"
)

// ClientScope represents which clients a discount applies to.
// Exactly one mode is set, discriminated by Kind; "all" is the default.
type ClientScope struct {
	Kind      ClientScopeKind `json:"kind"`
	ZoneID    int64           `json:"zoneId,omitempty"`
	ClientIDs []int64         `json:"clientIds,omitempty"`
}

// Validate checks that the scope fields are consistent with its Kind
func (s ClientScope) Validate() error {
	switch s.Kind {
	case "", ClientScopeAll:
		return nil
	case ClientScopeZone:
		if s.ZoneID <= 0 {
			return fmt.Errorf("client scope kind 'zone' requires zoneId")
		}
	case ClientScopeList:
		if len(s.ClientIDs) == 0 {
			return fmt.Errorf("client scope kind 'clients' requires a non-empty clientIds list")
		}
	default:
		return fmt.Errorf("unknown client scope kind: %s", s.Kind)
	}
	return nil
}

// Matches reports whether the scope applies to the given client
func (s ClientScope) Matches(c *Client) bool {
	switch s.Kind {
	case "", ClientScopeAll:
		return true
	case ClientScopeZone:
		return c.ZoneID == s.ZoneID
	case ClientScopeList:
		for _, id := range s.ClientIDs {
			if id == c.ID {
				return true
			}
		}
	}
	return false
}

// Discount represents a discount rule in the database
type Discount struct {
	ID              int64          `json:"id"`
	Description     string         `json:"description"`
	Percentage      float64        `json:"percentage"`      // 0-100
	ProductQuantity int            `json:"productQuantity"` // minimum qualifying quantity
	ExpirationDate  time.Time      `json:"expirationDate"`
	Status          DiscountStatus `json:"status"`
	ProductScope    ProductScope   `json:"productScope"`
	ClientScope     ClientScope    `json:"clientScope"`
	CreatedAt       string         `json:"createdAt"`
}

// CreateDiscountRequest represents the request body for creating a discount
// Example:
//
//	{
//	  "description": "10% harinas zona norte",
//	  "percentage": 10,
//	  "productQuantity": 5,
//	  "expirationDate": "2026-12-31T00:00:00Z",
//	  "productScope": {"kind": "subcategory", "subCategoryId": 12},
//	  "clientScope": {"kind": "zone", "zoneId": 4}
//	}
type CreateDiscountRequest struct {
	Description     string       `json:"description"`
	Percentage      float64      `json:"percentage"`
	ProductQuantity int          `json:"productQuantity"`
	ExpirationDate  time.Time    `json:"expirationDate"`
	ProductScope    ProductScope `json:"productScope"`
	ClientScope     ClientScope  `json:"clientScope"`
}

// UpdateDiscountRequest represents the request body for updating a discount
type UpdateDiscountRequest struct {
	Description     *string       `json:"description,omitempty"`
	Percentage      *float64      `json:"percentage,omitempty"`
	ProductQuantity *int          `json:"productQuantity,omitempty"`
	ExpirationDate  *time.Time    `json:"expirationDate,omitempty"`
	ProductScope    *ProductScope `json:"productScope,omitempty"`
	ClientScope     *ClientScope  `json:"clientScope,omitempty"`
}

// DiscountFilterParams represents optional filter parameters for discounts
type DiscountFilterParams struct {
	Status           *DiscountStatus
	ProductScopeKind *ProductScopeKind
}

// DiscountListResponse represents the response for listing discounts
type DiscountListResponse struct {
	Discounts []Discount `json:"discounts"`
	Page      int        `json:"page"`
	PageSize  int        `json:"pageSize"`
	LastPage  bool       `json:"lastPage"`
}

// BestDiscountResponse represents the response of the best-discount lookup
// Example response: {"found": true, "discount": {"id": 7, "percentage": 10, ...}}
type BestDiscountResponse struct {
	Found    bool      `json:"found"`
	Discount *Discount `json:"discount,omitempty"`
}
