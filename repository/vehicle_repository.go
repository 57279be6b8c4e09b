package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// VehicleRepository handles database operations for the delivery fleet
type VehicleRepository struct{}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{}
}

// Ensure VehicleRepository implements VehicleRepositoryInterface
var _ VehicleRepositoryInterface = (*VehicleRepository)(nil)

const vehicleColumns = `id, plate, COALESCE(description, '') as description, capacity_kg, active, created_at`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.Plate, &v.Description, &v.CapacityKg, &v.Active, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	log.Printf("📦 Create: Creating vehicle plate=%q", req.Plate)

	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	if plate == "" {
		return nil, fmt.Errorf("plate cannot be empty")
	}
	if req.CapacityKg <= 0 {
		return nil, fmt.Errorf("capacityKg must be positive")
	}

	vehicle, err := scanVehicle(db.DB.QueryRowContext(ctx, `
		INSERT INTO vehicles (plate, description, capacity_kg, active)
		VALUES ($1, $2, $3, true)
		RETURNING `+vehicleColumns,
		plate, sql.NullString{String: req.Description, Valid: req.Description != ""}, req.CapacityKg))
	if err != nil {
		log.Printf("❌ Create: Error creating vehicle: %v", err)
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	log.Printf("✅ Create: Successfully created vehicle id=%d", vehicle.ID)
	return vehicle, nil
}

// Update applies a partial update to a vehicle
func (r *VehicleRepository) Update(ctx context.Context, id int64, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	log.Printf("📦 Update: Updating vehicle id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanVehicle(tx.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	if req.Plate != nil {
		current.Plate = strings.ToUpper(strings.TrimSpace(*req.Plate))
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.CapacityKg != nil {
		current.CapacityKg = *req.CapacityKg
	}
	if req.Active != nil {
		current.Active = *req.Active
	}
	if current.CapacityKg <= 0 {
		return nil, fmt.Errorf("capacityKg must be positive")
	}

	vehicle, err := scanVehicle(tx.QueryRowContext(ctx, `
		UPDATE vehicles SET plate = $1, description = $2, capacity_kg = $3, active = $4
		WHERE id = $5
		RETURNING `+vehicleColumns,
		current.Plate,
		sql.NullString{String: current.Description, Valid: current.Description != ""},
		current.CapacityKg, current.Active, id))
	if err != nil {
		log.Printf("❌ Update: Error updating vehicle: %v", err)
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Update: Successfully updated vehicle id=%d", id)
	return vehicle, nil
}

// List retrieves vehicles, optionally only the active ones
func (r *VehicleRepository) List(ctx context.Context, activeOnly bool) ([]models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY plate`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error querying vehicles: %v", err)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}
