package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("disabled tracing is a pass-through", func(t *testing.T) {
		router := gin.New()
		router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enabled tracing does not disturb the request", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.Use(Tracing())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})
}

func TestTracedRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("prefers context value", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Set(RequestIDHeader, "ctx-id")
		c.Request.Header.Set(RequestIDHeader, "header-id")

		assert.Equal(t, "ctx-id", tracedRequestID(c))
	})

	t.Run("truncates oversized header IDs", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set(RequestIDHeader, strings.Repeat("a", MaxRequestIDLength+10))

		assert.Len(t, tracedRequestID(c), MaxRequestIDLength)
	})
}
