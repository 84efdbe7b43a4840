package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/isdelr/taskdeck-be/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrUnauthenticated is returned when a verified token names a user that no
// longer exists.
var ErrUnauthenticated = errors.New("unauthenticated")

// IdentityResolver turns verified token claims into the user they name,
// rejecting claims for users that no longer exist.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, claims *Claims) (models.User, error)
}

type contextKey string

const userContextKey = contextKey("authUser")

// UserFromContext returns the authenticated user attached by Middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// Middleware creates a middleware for protecting routes. It extracts the
// bearer token, verifies its signature, resolves the claimed identity against
// storage, and attaches the resulting user to the request context.
func Middleware(tokens *TokenManager, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			// 2. If not in header, fall back to the cookie
			if tokenStr == "" {
				cookie, err := r.Cookie("token")
				if err != nil {
					http.Error(w, "Missing auth token", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			// 3. Validate the signature
			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				http.Error(w, "Invalid auth token", http.StatusUnauthorized)
				return
			}

			// 4. The claims must still name a real user
			user, err := resolver.ResolveIdentity(r.Context(), claims)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					log.Warn().Str("username", claims.Username).Msg("Token names an unknown user")
					http.Error(w, "Invalid auth token", http.StatusUnauthorized)
					return
				}
				log.Error().Err(err).Msg("Failed to resolve token identity")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			// 5. Pass the authenticated user down via context
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
