package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/fabyoh/storefront/internal/domain"
)

// CORSMiddleware creates CORS middleware that handles preflight requests
// and adds appropriate CORS headers to responses.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originsSet[origin] || originsSet["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// identityKey stores the verified identity on the request context.
const identityKey contextKey = "identity"

// TokenVerifier verifies a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthMiddleware is the authentication gate every protected route passes
// through. A missing or malformed Authorization header is 401; a present
// but unverifiable token (bad signature, expired) is 403. No store lookup
// happens here: the identity is trusted from the token alone.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				Error(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			identity, err := verifier.VerifyToken(r.Context(), parts[1])
			if err != nil {
				Error(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates RBAC middleware. It must be mounted after
// AuthMiddleware; a request with no identity never reaches the role check.
func RequireRole(minRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !identity.Role.HasPermission(minRole) {
				Error(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity extracts the verified identity from context.
// Returns nil if the request did not pass the authentication gate.
func GetIdentity(ctx context.Context) *domain.Identity {
	if identity, ok := ctx.Value(identityKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}

// WithIdentity returns a context carrying the given identity. Used by tests.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
