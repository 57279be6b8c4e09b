package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"distribuidora-backoffice/models"
)

// fakeUserRepo holds users and roles in memory
type fakeUserRepo struct {
	usersByEmail map[string]*models.User
	roles        map[int64]*models.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: make(map[string]*models.User),
		roles:        make(map[int64]*models.Role),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.usersByEmail[email]
	if !ok {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) List(ctx context.Context, page, pageSize int) ([]models.User, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeUserRepo) GetRole(ctx context.Context, id int64) (*models.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, fmt.Errorf("role %d not found", id)
	}
	return role, nil
}

func (r *fakeUserRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	return nil, fmt.Errorf("not implemented")
}

func (r *fakeUserRepo) CreateRole(ctx context.Context, req *models.CreateRoleRequest) (*models.Role, error) {
	return nil, fmt.Errorf("not implemented")
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.usersByEmail[email] = &models.User{
		ID:           42,
		Name:         "Laura",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       3,
		Active:       active,
	}
	repo.roles[3] = &models.Role{ID: 3, Name: "ventas", Permissions: []string{models.PermOrders, models.PermReturns}}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "laura@distribuidora.com", "hunter2hunter2", true)
	s := NewAuthService(repo, newTestTokenService(t, "test-secret"))

	resp, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "laura@distribuidora.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(42), resp.User.ID)
	assert.Empty(t, resp.User.PasswordHash, "hash must not leave the service")
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "laura@distribuidora.com", "hunter2hunter2", true)
	s := NewAuthService(repo, newTestTokenService(t, "test-secret"))

	_, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "laura@distribuidora.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginUnknownEmailDoesNotLeak(t *testing.T) {
	s := NewAuthService(newFakeUserRepo(), newTestTokenService(t, "test-secret"))

	_, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@distribuidora.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "laura@distribuidora.com", "hunter2hunter2", false)
	s := NewAuthService(repo, newTestTokenService(t, "test-secret"))

	_, err := s.Login(context.Background(), &models.LoginRequest{
		Email:    "laura@distribuidora.com",
		Password: "hunter2hunter2",
	})
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	s := NewAuthService(newFakeUserRepo(), newTestTokenService(t, "test-secret"))

	hash, err := s.HashPassword("longenough")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("longenough")))

	_, err = s.HashPassword("short")
	assert.Error(t, err)
}

func TestAuthContextFromToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "laura@distribuidora.com", "hunter2hunter2", true)
	tokens := newTestTokenService(t, "test-secret")
	s := NewAuthService(repo, tokens)

	token, err := tokens.Issue(42, "Laura", 3)
	require.NoError(t, err)

	authCtx, err := s.AuthContextFromToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), authCtx.UserID)
	assert.Equal(t, "ventas", authCtx.RoleName)
	assert.True(t, authCtx.HasPermission(models.PermOrders))
	assert.False(t, authCtx.HasPermission(models.PermUsers))
}
