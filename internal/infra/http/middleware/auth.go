package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/leadflowhq/leadflow/internal/infra/auth"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

type contextKey string

const userContextKey contextKey = "auth-user"

// Auth verifies the Bearer token and places the authenticated identity in the
// request context. Handlers pass it explicitly into the use cases.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims, err := auth.VerifyToken(tokenString, secret)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			user := usecase.AuthUser{ID: claims.UserID, Name: claims.Name, Email: claims.Email}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
		})
	}
}

// CurrentUser returns the identity set by Auth, or the zero value when the
// request skipped the middleware.
func CurrentUser(r *http.Request) usecase.AuthUser {
	user, _ := r.Context().Value(userContextKey).(usecase.AuthUser)
	return user
}
