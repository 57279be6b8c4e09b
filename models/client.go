package models

// Client represents a wholesale/retail client of the distributor
type Client struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ZoneID    int64  `json:"zoneId"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// CreateClientRequest represents the request body for creating a client
// Example: {"name": "Almacén Don Pedro", "zoneId": 4, "address": "Av. Mitre 1520", "phone": "+54 11 4555-0199"}
type CreateClientRequest struct {
	Name    string `json:"name"`
	ZoneID  int64  `json:"zoneId"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateClientRequest represents the request body for updating a client
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	ZoneID  *int64  `json:"zoneId,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

// ClientFilterParams represents optional filter parameters for clients
type ClientFilterParams struct {
	Name   *string
	ZoneID *int64
}

// ClientListResponse represents the response for listing clients
type ClientListResponse struct {
	Clients  []Client `json:"clients"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	LastPage bool     `json:"lastPage"`
}
