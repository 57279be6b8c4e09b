package service

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/repository"
)

// AuthService handles login and the construction of the caller's
// authorization context
type AuthService struct {
	userRepo repository.UserRepositoryInterface
	tokens   *TokenService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepositoryInterface, tokens *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login verifies the credentials and returns a session token with the user
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// do not leak whether the email exists
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.Active {
		return nil, fmt.Errorf("user is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Name, user.RoleID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Login: user id=%d (%s)", user.ID, user.Email)
	user.PasswordHash = ""
	return &models.LoginResponse{Token: token, User: user}, nil
}

// HashPassword hashes a plaintext password for storage
func (s *AuthService) HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// AuthContextFromToken verifies a token and builds the caller's
// authorization context, loading the role's permission set
func (s *AuthService) AuthContextFromToken(ctx context.Context, tokenString string) (*models.AuthContext, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	role, err := s.userRepo.GetRole(ctx, claims.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role: %w", err)
	}

	return &models.AuthContext{
		UserID:      claims.UserID,
		Name:        claims.Name,
		RoleName:    role.Name,
		Permissions: role.Permissions,
	}, nil
}
