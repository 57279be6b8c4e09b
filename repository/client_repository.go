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

// ClientRepository handles database operations for clients
type ClientRepository struct{}

// NewClientRepository creates a new ClientRepository
func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

// Ensure ClientRepository implements ClientRepositoryInterface
var _ ClientRepositoryInterface = (*ClientRepository)(nil)

const clientColumns = `id, name, zone_id, COALESCE(address, '') as address, COALESCE(phone, '') as phone, active, created_at`

func scanClient(row interface{ Scan(...interface{}) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.ZoneID, &c.Address, &c.Phone, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	log.Printf("📦 Create: Creating client name=%s zone_id=%d", req.Name, req.ZoneID)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if req.ZoneID <= 0 {
		return nil, fmt.Errorf("zone_id is required")
	}

	query := `
		INSERT INTO clients (name, zone_id, address, phone, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING ` + clientColumns

	client, err := scanClient(db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Name),
		req.ZoneID,
		sql.NullString{String: req.Address, Valid: req.Address != ""},
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
	))
	if err != nil {
		log.Printf("❌ Create: Error creating client: %v", err)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	log.Printf("✅ Create: Successfully created client id=%d", client.ID)
	return client, nil
}

// Update applies a partial update to a client
func (r *ClientRepository) Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.Client, error) {
	log.Printf("📦 Update: Updating client id=%d", id)

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = strings.TrimSpace(*req.Name)
	}
	if req.ZoneID != nil {
		current.ZoneID = *req.ZoneID
	}
	if req.Address != nil {
		current.Address = *req.Address
	}
	if req.Phone != nil {
		current.Phone = *req.Phone
	}
	if req.Active != nil {
		current.Active = *req.Active
	}

	query := `
		UPDATE clients
		SET name = $1, zone_id = $2, address = $3, phone = $4, active = $5
		WHERE id = $6
		RETURNING ` + clientColumns

	updated, err := scanClient(db.DB.QueryRowContext(ctx, query,
		current.Name,
		current.ZoneID,
		sql.NullString{String: current.Address, Valid: current.Address != ""},
		sql.NullString{String: current.Phone, Valid: current.Phone != ""},
		current.Active,
		id,
	))
	if err != nil {
		log.Printf("❌ Update: Error updating client: %v", err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	log.Printf("✅ Update: Successfully updated client id=%d", id)
	return updated, nil
}

// GetByID retrieves a client by id
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	client, err := scanClient(db.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client not found")
		}
		log.Printf("❌ GetByID: Error fetching client: %v", err)
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return client, nil
}

// Filter retrieves clients matching the optional filters with pagination
func (r *ClientRepository) Filter(ctx context.Context, params *models.ClientFilterParams, page, pageSize int) ([]models.Client, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if params != nil {
		if params.Name != nil && *params.Name != "" {
			conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
			args = append(args, "%"+*params.Name+"%")
			argPos++
		}
		if params.ZoneID != nil {
			conditions = append(conditions, fmt.Sprintf("zone_id = $%d", argPos))
			args = append(args, *params.ZoneID)
			argPos++
		}
	}

	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Filter: Error querying clients: %v", err)
		return nil, fmt.Errorf("failed to filter clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
