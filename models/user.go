package models

// User represents a back-office user
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	RoleID       int64  `json:"roleId"`
	RoleName     string `json:"roleName,omitempty"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"createdAt"`
}

// Role represents a user role with its permission set
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Permission names used by the route permission checks
const (
	PermProducts  = "products"
	PermDiscounts = "discounts"
	PermOrders    = "orders"
	PermReturns   = "returns"
	PermUsers     = "users"
	PermVehicles  = "vehicles"
	PermCatalog   = "catalog"
)

// AuthContext represents the authenticated caller of a request: current user
// plus permission set. It is passed explicitly to operations that need
// authorization instead of living in a global session store.
type AuthContext struct {
	UserID      int64
	Name        string
	RoleName    string
	Permissions []string
}

// HasPermission reports whether the caller holds the given permission
func (a *AuthContext) HasPermission(perm string) bool {
	if a == nil {
		return false
	}
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// LoginRequest represents the request body for POST /admin/login
// Example: {"email": "erika@distribuidora.com", "password": "secret"}
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
// Example response: {"token": "eyJhbGciOi...", "user": {"id": 2, "name": "Erika", "roleId": 1}}
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
// Example: {"name": "Marcos", "email": "marcos@distribuidora.com", "password": "secret", "roleId": 2}
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"roleId"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	RoleID *int64  `json:"roleId,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// CreateRoleRequest represents the request body for creating a role
// Example: {"name": "preparador", "permissions": ["orders", "returns"]}
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
