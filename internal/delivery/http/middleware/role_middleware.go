package middleware

import (
	"net/http"

	"clinic-backend/pkg/response"
)

// RequireAdmin guards admin-only endpoints. It expects Authenticate to have
// run first so the admin flag is already in context.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAdmin, ok := GetIsAdminFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Role information not found")
			return
		}

		if !isAdmin {
			response.Forbidden(w, "You don't have permission to access this resource")
			return
		}

		next.ServeHTTP(w, r)
	})
}
