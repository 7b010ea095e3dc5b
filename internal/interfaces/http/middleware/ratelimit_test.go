package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		for i := 0; i < 5; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), "request %d should be allowed", i+1)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.2"))
		}
		assert.False(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("keys are limited independently", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		assert.True(t, limiter.Allow("tenant-a:10.0.0.3"))
		assert.True(t, limiter.Allow("tenant-a:10.0.0.3"))
		assert.False(t, limiter.Allow("tenant-a:10.0.0.3"))

		assert.True(t, limiter.Allow("tenant-b:10.0.0.3"))
		assert.True(t, limiter.Allow("tenant-b:10.0.0.3"))
	})

	t.Run("window reset refills tokens", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("10.0.0.4"))
		assert.True(t, limiter.Allow("10.0.0.4"))
		assert.False(t, limiter.Allow("10.0.0.4"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.4"))
	})

	t.Run("remaining tracks consumption", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		assert.Equal(t, 3, limiter.Remaining("10.0.0.5"))
		limiter.Allow("10.0.0.5")
		assert.Equal(t, 2, limiter.Remaining("10.0.0.5"))
		limiter.Allow("10.0.0.5")
		limiter.Allow("10.0.0.5")
		assert.Equal(t, 0, limiter.Remaining("10.0.0.5"))
	})

	t.Run("concurrent access stays within limit", func(t *testing.T) {
		limiter := NewRateLimiter(50, time.Minute)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 50, allowed)
	})
}

func TestRateLimit(t *testing.T) {
	newRouter := func(limiter *RateLimiter) *gin.Engine {
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("sets rate limit headers", func(t *testing.T) {
		router := newRouter(NewRateLimiter(10, time.Minute))

		req := httptest.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("returns 429 when exhausted", func(t *testing.T) {
		router := newRouter(NewRateLimiter(2, time.Minute))

		var w *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/ping", nil)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
		}

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("tenant header partitions the key", func(t *testing.T) {
		router := newRouter(NewRateLimiter(1, time.Minute))

		reqA := httptest.NewRequest("GET", "/ping", nil)
		reqA.Header.Set("X-Tenant-ID", "sppg-jakarta")
		wA := httptest.NewRecorder()
		router.ServeHTTP(wA, reqA)
		assert.Equal(t, http.StatusOK, wA.Code)

		// Same IP but a different tenant gets its own bucket.
		reqB := httptest.NewRequest("GET", "/ping", nil)
		reqB.Header.Set("X-Tenant-ID", "sppg-bandung")
		wB := httptest.NewRecorder()
		router.ServeHTTP(wB, reqB)
		assert.Equal(t, http.StatusOK, wB.Code)

		reqA2 := httptest.NewRequest("GET", "/ping", nil)
		reqA2.Header.Set("X-Tenant-ID", "sppg-jakarta")
		wA2 := httptest.NewRecorder()
		router.ServeHTTP(wA2, reqA2)
		assert.Equal(t, http.StatusTooManyRequests, wA2.Code)
	})
}
