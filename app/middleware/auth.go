package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/service"
)

type contextKey string

const authContextKey contextKey = "authContext"

// AuthContextFrom returns the caller's AuthContext, or nil for an
// unauthenticated request
func AuthContextFrom(ctx context.Context) *models.AuthContext {
	auth, _ := ctx.Value(authContextKey).(*models.AuthContext)
	return auth
}

// Authenticate verifies the bearer token and injects the caller's
// AuthContext into the request context
func Authenticate(authService *service.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			log.Printf("❌ Auth: Missing bearer token for %s %s", r.Method, r.URL.Path)
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		auth, err := authService.AuthContextFromToken(r.Context(), token)
		if err != nil {
			log.Printf("❌ Auth: Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authContextKey, auth)
		next(w, r.WithContext(ctx))
	}
}

// RequirePermission refuses callers whose role does not hold the given
// permission. Must run after Authenticate.
func RequirePermission(perm string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := AuthContextFrom(r.Context())
		if !auth.HasPermission(perm) {
			log.Printf("❌ Auth: User lacks permission %q for %s %s", perm, r.Method, r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
