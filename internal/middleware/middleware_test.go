package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kudos_web/internal/common"
	"kudos_web/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(ZapLogger(logger, &config.Config{GinMode: "test"}))
	r.Use(ErrorHandler(logger))
	r.NoRoute(NotFound())
	r.NoMethod(MethodNotAllowed())
	return r
}

func TestZapLogger_AssignsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestRouter(zap.New(core))
	r.GET("/ping", func(c *gin.Context) {
		_, ok := c.Get(common.LoggerKey)
		assert.True(t, ok)
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID)

	entries := logs.FilterMessage("Request handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, requestID, entries[0].ContextMap()["request_id"])
}

func TestZapLogger_KeepsIncomingRequestID(t *testing.T) {
	r := newTestRouter(zap.NewNop())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestErrorHandler(t *testing.T) {
	r := newTestRouter(zap.NewNop())
	r.GET("/api-error", func(c *gin.Context) { _ = c.Error(common.NewAPIError(http.StatusConflict, "CONFLICT", "A conflict occurred with the current state of the resource.")) })
	r.GET("/plain-error", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api-error", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"CONFLICT"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain-error", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	r := newTestRouter(zap.NewNop())
	r.GET("/only-get", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")
}

func TestUserContentHeaders(t *testing.T) {
	r := newTestRouter(zap.NewNop())
	r.Group("/uploads", UserContentHeaders()).GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "x") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestZapLogger_RecordsSessionID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestRouter(zap.New(core))
	r.GET("/ping", func(c *gin.Context) {
		c.Set(common.SessionTokenIDKey, "tok-1")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	entries := logs.FilterMessage("Request handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tok-1", entries[0].ContextMap()["session_id"])
}
