package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// TokenVerifier resolves a bearer token to the admin email it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type adminKey struct{}

// AdminEmail returns the admin email stored by NewRequireAdmin, if any.
func AdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminKey{}).(string)
	return email, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// NewRequireAdmin returns a middleware that rejects requests without a bearer
// token the verifier accepts. The verified email is stored in the request
// context for AdminEmail.
func NewRequireAdmin(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			email, err := v.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), adminKey{}, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes the API's JSON error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
