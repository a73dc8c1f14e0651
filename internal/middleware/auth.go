package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront-be/internal/user"
)

func failJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "fail",
		"message": message,
	})
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth verifies the bearer token and confirms the identity still
// exists before letting the request through. The coordinator downstream
// trusts the identity verbatim.
func RequireAuth(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				failJSON(w, http.StatusUnauthorized, "You are not logged in. Please log in to get access.")
				return
			}

			claims, err := user.ParseJWT(token)
			if err != nil {
				failJSON(w, http.StatusUnauthorized, "Invalid token. Please log in again.")
				return
			}

			u, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				failJSON(w, http.StatusUnauthorized, "The user belonging to this token no longer exists.")
				return
			}

			ctx := SetUserContext(r.Context(), u.ID, string(u.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserRoleFromContext(r.Context()) != string(user.RoleAdmin) {
			failJSON(w, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
