package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	menus := NewDomainGroup("menu", "/menus")
	menus.GET("", ok("menu list"))

	r.Register(menus).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/menus")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "menu list", w.Body.String())
}

func TestRouter_VersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	schools := NewDomainGroup("partner", "/schools")
	schools.GET("", ok("schools"))
	r.Register(schools).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v2/schools").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/schools").Code)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("inventory", "/inventory")
	g.GET("/items", ok("list")).
		POST("/items", ok("create")).
		PUT("/items/:id", ok("update")).
		PATCH("/items/:id/stock", ok("adjust")).
		DELETE("/items/:id", ok("delete"))

	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/inventory/items", "list"},
		{http.MethodPost, "/api/v1/inventory/items", "create"},
		{http.MethodPut, "/api/v1/inventory/items/42", "update"},
		{http.MethodPatch, "/api/v1/inventory/items/42/stock", "adjust"},
		{http.MethodDelete, "/api/v1/inventory/items/42", "delete"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.body, w.Body.String())
	}
}

func TestDomainGroup_MiddlewareCoversSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("program", "/programs")
	g.Use(func(c *gin.Context) {
		c.Header("X-Guard", "passed")
	})
	g.GET("", ok("programs"))

	enrollments := g.Group("enrollment", "/:id/enrollments")
	enrollments.GET("", ok("enrollments"))

	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/programs")
	assert.Equal(t, "passed", w.Header().Get("X-Guard"))

	w = serve(engine, http.MethodGet, "/api/v1/programs/7/enrollments")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "enrollments", w.Body.String())
	assert.Equal(t, "passed", w.Header().Get("X-Guard"), "group middleware must guard subgroup routes")
}

func TestRouter_UseGuardsAllGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	r.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	})

	schools := NewDomainGroup("partner", "/schools")
	schools.GET("", ok("schools"))

	budget := NewDomainGroup("budget", "/budget")
	budget.GET("/allocations", ok("allocations"))

	r.Register(schools).Register(budget).Setup()

	// Router middleware rejects unauthenticated requests on every group
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/schools").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/budget/allocations").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schools", nil)
	req.Header.Set("Authorization", "Bearer token")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "schools", w.Body.String())
}

func TestRouter_MultipleGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	schools := NewDomainGroup("partner", "/schools")
	schools.GET("", ok("schools"))

	suppliers := NewDomainGroup("partner", "/suppliers")
	suppliers.GET("", ok("suppliers"))

	r.Register(schools).Register(suppliers).Setup()

	assert.Equal(t, "schools", serve(engine, http.MethodGet, "/api/v1/schools").Body.String())
	assert.Equal(t, "suppliers", serve(engine, http.MethodGet, "/api/v1/suppliers").Body.String())
}

func TestDomainGroup_Name(t *testing.T) {
	g := NewDomainGroup("budget", "/budget")
	assert.Equal(t, "budget", g.Name())
}
