package middleware

import (
	"github.com/gin-gonic/gin"

	"docvault/internal/domain"
	"docvault/internal/pkg/response"
	"docvault/internal/pkg/session"
)

// RequireRole ensures that the authenticated user has the specified role.
// Anyone else is sent back to the dashboard with a notice and the handler
// never runs.
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	notice := "Access denied."
	if requiredRole == domain.RoleAdmin {
		notice = "Access restricted to administrators."
	}

	return func(c *gin.Context) {
		id, ok := session.FromContext(c)
		if !ok || id.Role != requiredRole {
			response.Redirect(c, "/", notice)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
