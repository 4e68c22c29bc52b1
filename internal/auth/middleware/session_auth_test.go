package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/domain"
)

type stubResumer map[string]error

func (s stubResumer) Resume(_ context.Context, id string) (*domain.Session, error) {
	err, ok := s[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	role := domain.RoleClient
	if id == "admin-session" {
		role = domain.RoleAdmin
	}
	return &domain.Session{ID: id, Username: id, Role: role, LastSeen: time.Now()}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := stubResumer{
		"client-session":  nil,
		"admin-session":   nil,
		"expired-session": domain.ErrSessionExpired,
		"broken-session":  errors.New("redis down"),
	}
	r := gin.New()
	protected := r.Group("/", RequireSession(sessions))
	protected.GET("/me", func(c *gin.Context) {
		id, _ := auth.CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"username": id.Username, "session": auth.SessionID(c)})
	})
	protected.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireSession(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"missing", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer client-session") }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "client-session"}) }, http.StatusOK},
		{"unknown", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"expired", func(req *http.Request) { req.Header.Set("Authorization", "Bearer expired-session") }, http.StatusUnauthorized},
		{"store failure", func(req *http.Request) { req.Header.Set("Authorization", "Bearer broken-session") }, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newRouter()

	for session, status := range map[string]int{
		"admin-session":  http.StatusNoContent,
		"client-session": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+session)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, session)
	}
}
