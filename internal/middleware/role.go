package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hut/internal/domain"
	"hut/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		for _, r := range roles {
			if role.(string) == string(r) {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleHotelAdmin, domain.RolePlatformAdmin)
}

func PlatformAdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RolePlatformAdmin)
}
