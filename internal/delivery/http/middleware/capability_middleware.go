package middleware

import (
	"net/http"

	"librarylens/internal/domain/entity"
	"librarylens/pkg/response"
)

// RequireCapability creates a middleware that checks the caller's role
// against the capability table.
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireCapability(capability entity.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if !role.Can(capability) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCatalogManager is a convenience middleware for section and book management
func RequireCatalogManager(next http.Handler) http.Handler {
	return RequireCapability(entity.CapManageCatalog)(next)
}

// RequireLibrarianManager is a convenience middleware for staff account management
func RequireLibrarianManager(next http.Handler) http.Handler {
	return RequireCapability(entity.CapManageLibrarians)(next)
}

// RequireSettingsManager is a convenience middleware for purchase settings
func RequireSettingsManager(next http.Handler) http.Handler {
	return RequireCapability(entity.CapManageSettings)(next)
}

// RequireAuditViewer is a convenience middleware for the audit trail
func RequireAuditViewer(next http.Handler) http.Handler {
	return RequireCapability(entity.CapViewAudit)(next)
}
