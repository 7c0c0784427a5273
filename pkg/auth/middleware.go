package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/thetop36/pkg/utils"
)

type ContextKey string

const EmailKey ContextKey = "email"

// Middleware rejects requests without a valid session cookie or bearer token.
func Middleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := authenticate(jwtService, r)
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), EmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalMiddleware attaches the email when the request carries a valid token and passes through otherwise.
func OptionalMiddleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if email, ok := authenticate(jwtService, r); ok {
				r = r.WithContext(context.WithValue(r.Context(), EmailKey, email))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok && email != ""
}

func authenticate(jwtService JWTServiceInterface, r *http.Request) (string, bool) {
	token := ""
	if cookie, err := r.Cookie(CookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", false
		}
		token = strings.TrimPrefix(authHeader, "Bearer ")
	}
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return "", false
	}
	return claims.Email, true
}
