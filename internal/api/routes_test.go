package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ehtishamsajjad/tm/internal/api/dto"
	"github.com/ehtishamsajjad/tm/internal/api/handlers"
	"github.com/ehtishamsajjad/tm/internal/api/middleware"
	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/pkg/translator"
)

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func newRouter(db handlers.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator()

	auth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer ok" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		middleware.SetCurrentUser(c, model.User{ID: "u1", FirstName: "Ann"})
		c.Next()
	}

	r := gin.New()
	RegisterRoutes(r, auth, handlers.NewHealthHandler(db), handlers.NewTaskHandler(nil), handlers.NewStatsHandler(nil))
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	rec := serve(newRouter(pinger{}), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handlers.HealthBasic
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, handlers.StatusOk, body.Database)
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	rec := serve(newRouter(pinger{err: errors.New("closed")}), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), handlers.StatusDown)
}

func TestPrivateRoutesRequireAuth(t *testing.T) {
	r := newRouter(pinger{})
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/1"},
		{http.MethodPatch, "/api/tasks/1"},
		{http.MethodDelete, "/api/tasks/1"},
		{http.MethodPost, "/api/tasks/1/move"},
		{http.MethodGet, "/api/tags"},
		{http.MethodGet, "/api/stats/activity"},
		{http.MethodGet, "/api/stats/summary"},
	} {
		rec := serve(r, route.method, route.path, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestMe(t *testing.T) {
	rec := serve(newRouter(pinger{}), http.MethodGet, "/api/me", "ok")
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, dto.User{ID: "u1", Name: "Ann"}, body.User)
}
