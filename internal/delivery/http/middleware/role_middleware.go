package middleware

import (
	"net/http"

	"medsync/internal/domain/entity"
	"medsync/pkg/response"
)

// RequireRole rejects requests whose token role is not one of allowedRoleIDs
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireHospital limits an endpoint to hospital accounts
func RequireHospital(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDHospital)(next)
}
