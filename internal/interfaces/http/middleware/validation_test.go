package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type schoolPayload struct {
	Name string `json:"name" binding:"required,min=3"`
	NPSN string `json:"npsn" binding:"omitempty,npsn"`
}

func validationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.POST("/schools", func(c *gin.Context) {
		var payload schoolPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/schools", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidation_NPSN(t *testing.T) {
	router := validationRouter()

	t.Run("accepts 8-digit npsn", func(t *testing.T) {
		w := postJSON(router, `{"name":"SDN Menteng 01","npsn":"20100001"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("accepts empty npsn", func(t *testing.T) {
		w := postJSON(router, `{"name":"SDN Menteng 01"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects short npsn", func(t *testing.T) {
		w := postJSON(router, `{"name":"SDN Menteng 01","npsn":"2010001"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "8-digit NPSN")
	})

	t.Run("rejects non-numeric npsn", func(t *testing.T) {
		w := postJSON(router, `{"name":"SDN Menteng 01","npsn":"2010000A"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestValidation_UsesJSONFieldNames(t *testing.T) {
	router := validationRouter()

	w := postJSON(router, `{"npsn":"20100001"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The error detail names the JSON field, not the Go struct field.
	assert.Contains(t, w.Body.String(), `"name"`)
	assert.NotContains(t, w.Body.String(), `"Name"`)
	assert.Contains(t, w.Body.String(), "This field is required")
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("20100001", 8))
	assert.False(t, isDigits("2010001", 8))
	assert.False(t, isDigits("201000011", 8))
	assert.False(t, isDigits("2010000x", 8))
	assert.False(t, isDigits("", 8))
}
