// Package middleware provides HTTP middleware for authentication, request
// IDs, and rate limiting.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"proxymint/internal/domain"
)

// Auth validates an HS256 JWT Bearer token and places the token subject in
// the request context as the calling account. Every custody operation reads
// its caller from there.
func Auth(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				tokenStr := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
					return jwtSecret, nil
				}, jwt.WithValidMethods([]string{"HS256"}))

				if err == nil && token.Valid {
					if claims, ok := token.Claims.(jwt.MapClaims); ok {
						if sub, ok := claims["sub"].(string); ok && sub != "" {
							ctx := domain.WithCaller(r.Context(), domain.Account(sub))
							next.ServeHTTP(w, r.WithContext(ctx))
							return
						}
					}
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":    401,
				"message": "unauthorized: provide a valid JWT Bearer token",
			})
		})
	}
}
