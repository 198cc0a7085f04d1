package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

const roleAdmin = "admin"

// requireAuth validates the bearer token and stashes the caller's user id in
// the request context. Handlers derive the acting party from this id, never
// from the request body.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid claims")
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing subject claim")
			return
		}

		role, _ := claims["role"].(string)

		ctx := context.WithValue(r.Context(), userIDKey, sub)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin layers a role check on top of requireAuth. Marketplace users
// never carry the admin role claim, so dispute verdicts and the
// reconciliation surface stay out of their reach.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if roleFrom(r.Context()) != roleAdmin {
			writeErrorCode(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next(w, r)
	})
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func roleFrom(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
