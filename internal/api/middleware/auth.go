package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dom/kpitter/internal/service"
)

type contextKey string

const (
	UsernameKey contextKey = "username"
)

// BasicAuth re-verifies HTTP Basic credentials on every request; there is no
// session state. Requests without an Authorization header proceed
// unauthenticated (handlers that need a caller reject those themselves).
// Requests carrying invalid credentials are rejected outright, with the same
// response for an unknown username and a wrong password.
func BasicAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, pass, ok := r.BasicAuth()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !authService.Authenticate(r.Context(), username, pass) {
				w.Header().Set("WWW-Authenticate", "Basic")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthenticatedUsername returns the username BasicAuth attached to the
// context, or the empty string for an unauthenticated request.
func AuthenticatedUsername(ctx context.Context) string {
	if username, ok := ctx.Value(UsernameKey).(string); ok {
		return username
	}
	return ""
}
