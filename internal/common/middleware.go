package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	usernameKey contextKey = "username"
)

// AuthMiddleware enforces the Authorization: Bearer <token> header on every
// wrapped handler and rejects the request before any storage is touched.
// On success the caller identity is injected into the request context.
func AuthMiddleware(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, fmt.Errorf("%w: authorization required", ErrUnauthorized))
				return
			}

			// header format: Bearer <token>
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, fmt.Errorf("%w: invalid authorization header", ErrUnauthorized))
				return
			}

			claims, err := tm.ValidToken(parts[1])
			if err != nil {
				WriteError(w, fmt.Errorf("%w: invalid or expired token", ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id injected by
// AuthMiddleware, or false if the request never passed through it.
func UserIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(userIDKey).(uint64)
	return id, ok
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

// ContextWithUser is used by handler tests to simulate an authenticated request
func ContextWithUser(ctx context.Context, userID uint64, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}
