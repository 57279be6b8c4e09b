package models

import "time"

// ReturnRequest represents a merchandise return against a confirmed delivery
type ReturnRequest struct {
	ID           int64               `json:"id"`
	OrderID      int64               `json:"orderId"` // the confirmed delivery being returned against
	UserID       int64               `json:"userId"`
	UserName     string              `json:"userName,omitempty"`
	Date         string              `json:"date"`
	ConfirmedAt  *time.Time          `json:"confirmedAt,omitempty"`
	Status       Status              `json:"status"`
	Observations string              `json:"observations,omitempty"`
	Items        []ReturnRequestItem `json:"items,omitempty"`
}

// ReturnRequestItem represents one returned product. Quantity is bounded by
// the quantity originally delivered for that product.
type ReturnRequestItem struct {
	ID                int64  `json:"id"`
	ReturnRequestID   int64  `json:"returnRequestId"`
	ProductID         int64  `json:"productId"`
	ProductName       string `json:"productName,omitempty"`
	Quantity          int    `json:"quantity"`
	DeliveredQuantity int    `json:"deliveredQuantity"`
}

// CreateReturnRequestRequest represents the request body for creating a return request
// Example:
//
//	{
//	  "orderId": 31,
//	  "observations": "bolsas rotas",
//	  "items": [
//	    {"productId": 12, "quantity": 2}
//	  ]
//	}
type CreateReturnRequestRequest struct {
	OrderID      int64                     `json:"orderId"`
	Observations string                    `json:"observations,omitempty"`
	Items        []CreateReturnItemRequest `json:"items"`
}

// CreateReturnItemRequest represents one line of a return request creation
type CreateReturnItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ReturnRequestListResponse represents the response for listing return requests
type ReturnRequestListResponse struct {
	ReturnRequests []ReturnRequest `json:"returnRequests"`
	Page           int             `json:"page"`
	PageSize       int             `json:"pageSize"`
	LastPage       bool            `json:"lastPage"`
}
