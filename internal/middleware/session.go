package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"docvault/internal/pkg/response"
	"docvault/internal/pkg/session"
)

const LoginPath = "/login"

// SessionGate runs before every request. It attaches the session identity
// when present and redirects anonymous requests to the login page, except for
// the public routes and requests that matched no route at all.
func SessionGate(sessions *session.Manager, public ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := sessions.Read(c); ok {
			session.WithIdentity(c, id)
		}

		route := c.FullPath()
		if route == "" || isPublic(route, public) {
			c.Next()
			return
		}

		if _, ok := session.FromContext(c); !ok {
			response.Redirect(c, LoginPath, "Please log in first.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// isPublic matches exact routes and, for entries ending in "/", whole subtrees.
func isPublic(route string, public []string) bool {
	for _, p := range public {
		if route == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(route, p)) {
			return true
		}
	}
	return false
}
