package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Permissions follow the resource:action convention used by the seeded
// system roles, e.g. "schools:read" or "budget:*". Claims resolve
// wildcards, so middleware only asks for the concrete permission a
// route needs.

// RequirePermission guards a route with a single permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasPermission(permission) {
			forbid(c)
			return
		}
		c.Next()
	}
}

// RequireAnyPermission lets the request through when the caller holds
// at least one of the listed permissions.
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasAnyPermission(permissions...) {
			forbid(c)
			return
		}
		c.Next()
	}
}

// RequireResource derives the required permission from the HTTP method:
// GET needs resource:read, POST resource:create, PUT and PATCH
// resource:update, DELETE resource:delete. Domain state transitions are
// POSTs, so they fall under resource:create; routes needing a stricter
// action use RequirePermission directly.
func RequireResource(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || !claims.HasPermission(resource+":"+methodToAction(c.Request.Method)) {
			forbid(c)
			return
		}
		c.Next()
	}
}

// RequireRole restricts a route to callers holding one of the given
// role codes regardless of their permission set. Used for platform
// level routes such as tenant lifecycle management.
func RequireRole(roleCodes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			forbid(c)
			return
		}
		for _, code := range roleCodes {
			if claims.HasRole(code) {
				c.Next()
				return
			}
		}
		forbid(c)
	}
}

func methodToAction(method string) string {
	switch method {
	case http.MethodGet:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient permissions",
		},
	})
}
