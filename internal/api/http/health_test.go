package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, h *HealthHandler, method, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp HealthResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestHealthCheck(t *testing.T) {
	for _, path := range []string{"/health", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			rr, resp := serveHealth(t, NewHealthHandler("test-service", "1.0.0", nil, nil), http.MethodGet, path)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "healthy", resp.Status)
			assert.Equal(t, "test-service", resp.Service)
			assert.Equal(t, "1.0.0", resp.Version)
			assert.Equal(t, "disabled", resp.DB)
			assert.Equal(t, "disabled", resp.Redis)
		})
	}
}

func TestHealthCheck_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := NewHealthHandler("test-service", "1.0.0", nil, client)

	_, resp := serveHealth(t, h, http.MethodGet, "/health")
	assert.Equal(t, "up", resp.Redis)
	assert.Equal(t, "healthy", resp.Status)

	mr.Close()

	rr, resp := serveHealth(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "down", resp.Redis)
	assert.Equal(t, "degraded", resp.Status)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr, _ := serveHealth(t, NewHealthHandler("test-service", "1.0.0", nil, nil), http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
