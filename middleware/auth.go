package middleware

import (
	"net/http"
	"strings"

	"hotelhub-backend/services"
	"hotelhub-backend/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// RequireAuth parses the bearer token once per request and stores the typed
// principal in the request context. No token, no access.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "missing_token", "message": "authorization token required"},
			})
			return
		}

		claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "invalid_token", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(principalKey, services.Principal{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// PrincipalFromContext returns the principal RequireAuth stored.
func PrincipalFromContext(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}

func forbid(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error":   gin.H{"code": "forbidden", "message": message},
	})
}

// RequireStaff gates routes for staff and admin roles.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok || !p.IsStaff() {
			forbid(c, "staff access required")
			return
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok || !p.IsAdmin() {
			forbid(c, "admin access required")
			return
		}
		c.Next()
	}
}
