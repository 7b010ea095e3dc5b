package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// withClaims injects claims the way the JWT middleware does, so the
// permission middleware can be tested without issuing real tokens.
func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	}
}

func permRouter(claims *auth.Claims, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(withClaims(claims))
	router.Handle("GET", "/resource", guard, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.Handle("POST", "/resource", guard, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.Handle("PUT", "/resource", guard, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.Handle("DELETE", "/resource", guard, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func doRequest(router *gin.Engine, method string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/resource", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequirePermission(t *testing.T) {
	t.Run("allows holder of exact permission", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"menus:approve"}}
		router := permRouter(claims, RequirePermission("menus:approve"))

		assert.Equal(t, http.StatusOK, doRequest(router, "GET").Code)
	})

	t.Run("allows holder of resource wildcard", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"menus:*"}}
		router := permRouter(claims, RequirePermission("menus:approve"))

		assert.Equal(t, http.StatusOK, doRequest(router, "GET").Code)
	})

	t.Run("denies holder of unrelated permission", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"schools:read"}}
		router := permRouter(claims, RequirePermission("menus:approve"))

		w := doRequest(router, "GET")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FORBIDDEN")
	})

	t.Run("denies request without claims", func(t *testing.T) {
		router := permRouter(nil, RequirePermission("menus:approve"))

		assert.Equal(t, http.StatusForbidden, doRequest(router, "GET").Code)
	})
}

func TestRequireAnyPermission(t *testing.T) {
	claims := &auth.Claims{Permissions: []string{"budget:read"}}

	t.Run("one match suffices", func(t *testing.T) {
		router := permRouter(claims, RequireAnyPermission("budget:approve", "budget:read"))
		assert.Equal(t, http.StatusOK, doRequest(router, "GET").Code)
	})

	t.Run("no match denies", func(t *testing.T) {
		router := permRouter(claims, RequireAnyPermission("budget:approve", "budget:create"))
		assert.Equal(t, http.StatusForbidden, doRequest(router, "GET").Code)
	})
}

func TestRequireResource(t *testing.T) {
	t.Run("maps methods to actions", func(t *testing.T) {
		cases := []struct {
			method     string
			permission string
		}{
			{"GET", "inventory:read"},
			{"POST", "inventory:create"},
			{"PUT", "inventory:update"},
			{"DELETE", "inventory:delete"},
		}

		for _, tc := range cases {
			claims := &auth.Claims{Permissions: []string{tc.permission}}
			router := permRouter(claims, RequireResource("inventory"))

			assert.Equal(t, http.StatusOK, doRequest(router, tc.method).Code,
				"%s should be allowed by %s", tc.method, tc.permission)
		}
	})

	t.Run("read-only role cannot write", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"inventory:read"}}
		router := permRouter(claims, RequireResource("inventory"))

		assert.Equal(t, http.StatusOK, doRequest(router, "GET").Code)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "POST").Code)
		assert.Equal(t, http.StatusForbidden, doRequest(router, "DELETE").Code)
	})

	t.Run("resource wildcard covers every action", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"inventory:*"}}
		router := permRouter(claims, RequireResource("inventory"))

		for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
			assert.Equal(t, http.StatusOK, doRequest(router, method).Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("allows listed role", func(t *testing.T) {
		claims := &auth.Claims{RoleCodes: []string{"super_admin"}}
		router := permRouter(claims, RequireRole("super_admin"))

		assert.Equal(t, http.StatusOK, doRequest(router, "GET").Code)
	})

	t.Run("allows any of several roles", func(t *testing.T) {
		claims := &auth.Claims{RoleCodes: []string{"sppg_admin"}}
		router := permRouter(claims, RequireRole("super_admin", "sppg_admin"))

		assert.Equal(t, http.StatusOK, doRequest(router, "GET").Code)
	})

	t.Run("denies unlisted role even with broad permissions", func(t *testing.T) {
		claims := &auth.Claims{
			RoleCodes:   []string{"finance"},
			Permissions: []string{"*:*"},
		}
		router := permRouter(claims, RequireRole("super_admin"))

		assert.Equal(t, http.StatusForbidden, doRequest(router, "GET").Code)
	})

	t.Run("denies request without claims", func(t *testing.T) {
		router := permRouter(nil, RequireRole("super_admin"))

		assert.Equal(t, http.StatusForbidden, doRequest(router, "GET").Code)
	})
}
