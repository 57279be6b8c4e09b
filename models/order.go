package models

import "time"

// Order represents a sales order in the database.
// ConfirmedAt is nil while the order has not been confirmed; there is no
// sentinel date.
type Order struct {
	ID             int64              `json:"id"`
	ClientID       int64              `json:"clientId"`
	ClientName     string             `json:"clientName,omitempty"`
	UserID         int64              `json:"userId"`
	UserName       string             `json:"userName,omitempty"`
	Date           string             `json:"date"`
	ConfirmedAt    *time.Time         `json:"confirmedAt,omitempty"`
	Status         Status             `json:"status"` // pending, confirmed, cancelled
	Crates         int                `json:"crates"`
	Observations   string             `json:"observations,omitempty"`
	OrderRequestID *int64             `json:"orderRequestId,omitempty"`
	Items          []OrderProductItem `json:"items,omitempty"`
}

// OrderProductItem represents a line item of an order.
// While the order is pending, UnitPrice is the list price and Discount is
// re-resolved dynamically. Once the order leaves pending, the discount is
// baked into UnitPrice and Discount records the applied percentage.
type OrderProductItem struct {
	ID          int64    `json:"id"`
	OrderID     int64    `json:"orderId"`
	ProductID   int64    `json:"productId"`
	ProductName string   `json:"productName,omitempty"`
	UnitType    UnitType `json:"unitType,omitempty"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	Discount    float64  `json:"discount"`         // percentage
	Weight      *float64 `json:"weight,omitempty"` // only for kilo products
}

// OrderFilterParams represents optional filter parameters for orders
type OrderFilterParams struct {
	Status   *Status
	ClientID *int64
	DateFrom *string
	DateTo   *string
}

// OrderListItem represents an order in a list response
type OrderListItem struct {
	Order
	LineCount int     `json:"lineCount"`
	Total     float64 `json:"total"`
}

// OrderListResponse represents the response for listing orders
// Example response:
//
//	{
//	  "orders": [
//	    {
//	      "id": 31,
//	      "clientId": 8,
//	      "clientName": "Almacén Don Pedro",
//	      "userId": 2,
//	      "date": "2026-03-02T09:15:00Z",
//	      "status": "pending",
//	      "crates": 0,
//	      "lineCount": 4,
//	      "total": 18250.75
//	    }
//	  ],
//	  "page": 1,
//	  "pageSize": 20,
//	  "lastPage": true
//	}
type OrderListResponse struct {
	Orders   []OrderListItem `json:"orders"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	LastPage bool            `json:"lastPage"`
}

// PreparationLineInput represents one line of a preparation submit.
// Weight is only meaningful for kilo products.
type PreparationLineInput struct {
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Weight    *float64 `json:"weight,omitempty"`
}

// PrepareOrderRequest represents the request body for PUT /admin/orders/:id/prepare
// Example:
//
//	{
//	  "lines": [
//	    {"productId": 12, "quantity": 5},
//	    {"productId": 40, "quantity": 2, "weight": 3.75}
//	  ],
//	  "crates": 3,
//	  "observations": "entregar por la mañana"
//	}
type PrepareOrderRequest struct {
	Lines        []PreparationLineInput `json:"lines"`
	Crates       int                    `json:"crates"`
	Observations string                 `json:"observations,omitempty"`
}

// PreparationLine represents one line of the preparation screen: the
// originally requested quantity against the actually fulfilled one.
type PreparationLine struct {
	ProductID           int64    `json:"productId"`
	ProductName         string   `json:"productName"`
	UnitType            UnitType `json:"unitType"`
	RequestedQuantity   int      `json:"requestedQuantity"`
	ActualQuantity      int      `json:"actualQuantity"`
	Weight              *float64 `json:"weight,omitempty"`
	IsOriginalFromOrder bool     `json:"isOriginalFromOrder"`
	Stock               int      `json:"stock"`
	AvailableStock      int      `json:"availableStock"`
}

// PreparationResponse represents the response of the preparation endpoint
type PreparationResponse struct {
	OrderID int64             `json:"orderId"`
	Lines   []PreparationLine `json:"lines"`
	Crates  int               `json:"crates"`
}
