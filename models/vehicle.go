package models

// Vehicle represents a delivery vehicle of the distributor's fleet
type Vehicle struct {
	ID          int64   `json:"id"`
	Plate       string  `json:"plate"`
	Description string  `json:"description,omitempty"`
	CapacityKg  float64 `json:"capacityKg"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"createdAt"`
}

// CreateVehicleRequest represents the request body for creating a vehicle
// Example: {"plate": "AB123CD", "description": "Camioneta reparto norte", "capacityKg": 1200}
type CreateVehicleRequest struct {
	Plate       string  `json:"plate"`
	Description string  `json:"description,omitempty"`
	CapacityKg  float64 `json:"capacityKg"`
}

// UpdateVehicleRequest represents the request body for updating a vehicle
type UpdateVehicleRequest struct {
	Plate       *string  `json:"plate,omitempty"`
	Description *string  `json:"description,omitempty"`
	CapacityKg  *float64 `json:"capacityKg,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}
