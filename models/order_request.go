package models

// OrderRequest represents the originating customer request behind an order.
// It holds the originally requested quantities, used as the comparison
// baseline during order preparation.
type OrderRequest struct {
	ID        int64              `json:"id"`
	ClientID  int64              `json:"clientId"`
	Date      string             `json:"date"`
	Converted bool               `json:"converted"` // already turned into an order
	Items     []OrderRequestItem `json:"items"`
}

// OrderRequestItem represents one requested product and quantity
type OrderRequestItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
