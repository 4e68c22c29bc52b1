package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/config"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/credentials"
	authservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/service"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/session"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/render"
	portfolioservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/service"
	settingsrepo "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/repository"
	settingsservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/service"
)

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store := settingsrepo.NewFileStore(filepath.Join(dir, "presets.json"), filepath.Join(dir, "admin.json"))
	accounts := credentials.StaticAccounts(config.AccountsConfig{
		AdminPassword:   "admin-secret",
		Client1Password: "c1-secret",
		Client2Password: "c2-secret",
	})
	authSvc := authservice.NewAuthService(
		credentials.NewResolver(accounts, store, nil),
		credentials.NewOverrides(store, nil),
		session.NewService(session.NewMemoryRepository(), 15*time.Minute, nil),
		nil,
	)
	settingsSvc := settingsservice.NewSettingsService(store, nil)
	exportSvc := portfolioservice.NewExportService(render.NewRenderer(nil, render.WithTempRoot(t.TempDir())), settingsSvc, nil, nil)

	return BuildRouter(RouterDeps{
		ServiceName:         "portfolio-api",
		Version:             "test",
		AllowedOrigins:      []string{"http://localhost:3000"},
		ExportRatePerMinute: 5,
		Auth:                authSvc,
		Settings:            settingsSvc,
		Portfolio:           exportSvc,
	})
}

func loginToken(t *testing.T, r http.Handler, user, pass string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": user, "password": pass})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.SessionID
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildRouter_Health(t *testing.T) {
	r := buildTestRouter(t)

	w := get(r, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestBuildRouter_Guards(t *testing.T) {
	r := buildTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/portfolio/template", "").Code)

	client := loginToken(t, r, "client1", "c1-secret")
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/portfolio/template", client).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/admin/presets", client).Code)

	admin := loginToken(t, r, credentials.AdminUsername, "admin-secret")
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/admin/presets", admin).Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/admin/overrides", admin).Code)
}

func TestBuildRouter_CORS(t *testing.T) {
	r := buildTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
