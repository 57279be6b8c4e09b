package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"distribuidora-backoffice/db"
	"distribuidora-backoffice/models"
)

// UserRepository handles database operations for back-office users and roles
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// Create creates a new user with an already-hashed password
func (r *UserRepository) Create(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error) {
	log.Printf("📦 Create: Creating user %q", req.Email)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	var u models.User
	err := db.DB.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role_id, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, name, email, role_id, active, created_at`,
		strings.TrimSpace(req.Name), email, passwordHash, req.RoleID).
		Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.Active, &u.CreatedAt)
	if err != nil {
		log.Printf("❌ Create: Error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("✅ Create: Successfully created user id=%d", u.ID)
	return &u, nil
}

// Update applies a partial update to a user
func (r *UserRepository) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	log.Printf("📦 Update: Updating user id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var u models.User
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, email, role_id, active, created_at FROM users WHERE id = $1 FOR UPDATE`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.Active, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.RoleID != nil {
		u.RoleID = *req.RoleID
	}
	if req.Active != nil {
		u.Active = *req.Active
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE users SET name = $1, role_id = $2, active = $3 WHERE id = $4
		RETURNING id, name, email, role_id, active, created_at`,
		u.Name, u.RoleID, u.Active, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.Active, &u.CreatedAt)
	if err != nil {
		log.Printf("❌ Update: Error updating user: %v", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Update: Successfully updated user id=%d", id)
	return &u, nil
}

// GetByID retrieves a user with their role name
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := db.DB.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.role_id, r.name, u.active, u.created_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.Active, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user by email for login
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.DB.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.role_id, r.name, u.active, u.created_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.Active, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}

// List retrieves users with pagination
func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]models.User, error) {
	rows, err := db.DB.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, u.role_id, r.name, u.active, u.created_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
		ORDER BY u.name
		LIMIT $1 OFFSET $2`, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("❌ List: Error querying users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.RoleName, &u.Active, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// scanRole decodes a role row. Permissions are stored as a jsonb array.
func scanRole(row interface{ Scan(...interface{}) error }) (*models.Role, error) {
	var role models.Role
	var permissions []byte
	if err := row.Scan(&role.ID, &role.Name, &permissions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(permissions, &role.Permissions); err != nil {
		return nil, fmt.Errorf("failed to decode role permissions: %w", err)
	}
	return &role, nil
}

// GetRole retrieves a role with its permissions
func (r *UserRepository) GetRole(ctx context.Context, id int64) (*models.Role, error) {
	role, err := scanRole(db.DB.QueryRowContext(ctx,
		`SELECT id, name, permissions FROM roles WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("role not found")
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}
	return role, nil
}

// ListRoles retrieves all roles
func (r *UserRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id, name, permissions FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

// CreateRole creates a new role with its permission set
func (r *UserRepository) CreateRole(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error) {
	log.Printf("📦 CreateRole: Creating role %q", req.Name)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	encoded, err := json.Marshal(permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode permissions: %w", err)
	}

	role, err := scanRole(db.DB.QueryRowContext(ctx, `
		INSERT INTO roles (name, permissions) VALUES ($1, $2)
		RETURNING id, name, permissions`,
		strings.TrimSpace(req.Name), encoded))
	if err != nil {
		log.Printf("❌ CreateRole: Error creating role: %v", err)
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	log.Printf("✅ CreateRole: Successfully created role id=%d", role.ID)
	return role, nil
}
