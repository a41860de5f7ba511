package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ehtishamsajjad/tm/internal/api/middleware"
	"github.com/ehtishamsajjad/tm/internal/auth"
	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/pkg/translator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator()
	os.Exit(m.Run())
}

type fakeUsers struct {
	users map[string]model.User
	err   error
}

func (f fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func newAuthRouter(users middleware.UserFinder) (*gin.Engine, *auth.Issuer) {
	issuer := auth.NewIssuer("secret", time.Hour)

	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), middleware.AuthMiddleware(issuer, users))
	router.GET("/me", func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, user.ID)
	})
	return router, issuer
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, issuer := newAuthRouter(fakeUsers{users: map[string]model.User{"u1": {ID: "u1"}}})
	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	rec := get(router, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u1", rec.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	router, issuer := newAuthRouter(fakeUsers{users: map[string]model.User{"u1": {ID: "u1"}}})
	unknown, err := issuer.Issue("ghost")
	require.NoError(t, err)
	foreign, err := auth.NewIssuer("other", time.Hour).Issue("u1")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic dTE6cHc=",
		"empty bearer":    "Bearer ",
		"garbage":         "Bearer not-a-token",
		"foreign secret":  "Bearer " + foreign,
		"unknown user id": "Bearer " + unknown,
	} {
		t.Run(name, func(t *testing.T) {
			rec := get(router, header)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Body.String(), "Unauthorized")
		})
	}
}

func TestAuthMiddleware_StorageFailure(t *testing.T) {
	router, issuer := newAuthRouter(fakeUsers{err: errors.New("disk I/O error")})
	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	rec := get(router, "Bearer "+token)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLanguageMiddleware_FirstTag(t *testing.T) {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, middleware.GetLang(c)) })

	for header, want := range map[string]string{
		"":                     translator.LanguageEn,
		"fr":                   "fr",
		"fr-CA,fr;q=0.9,en":    "fr-CA",
		" de;q=0.8 , en;q=0.5": "de",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, want, rec.Body.String(), "header %q", header)
	}
}
