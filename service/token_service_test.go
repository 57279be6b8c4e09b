package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	t.Setenv("JWT_SECRET", secret)
	s, err := NewTokenService()
	require.NoError(t, err)
	return s
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewTokenService()
	assert.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	s := newTestTokenService(t, "test-secret")

	token, err := s.Issue(42, "Laura", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Laura", claims.Name)
	assert.Equal(t, int64(3), claims.RoleID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-a")
	token, err := issuer.Issue(1, "x", 1)
	require.NoError(t, err)

	verifier := newTestTokenService(t, "secret-b")
	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := newTestTokenService(t, "test-secret")

	_, err := s.Verify("not-a-token")
	assert.Error(t, err)

	_, err = s.Verify("")
	assert.Error(t, err)
}
