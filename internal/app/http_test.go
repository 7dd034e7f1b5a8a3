package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-auth/internal/auth"
	"planner-auth/internal/auth/token"
	"planner-auth/internal/config"
	"planner-auth/internal/db"
	"planner-auth/internal/db/dbtest"
)

type stubProvider struct{}

func (stubProvider) Name() string { return "google" }

func (stubProvider) AuthCodeURL(state, _ string) string {
	return "https://accounts.example/auth?state=" + state
}

func (stubProvider) VerifyIDToken(context.Context, string) (*auth.Identity, error) {
	return nil, auth.ErrVerificationFailed
}

func (stubProvider) ExchangeCode(context.Context, string, string) (*auth.Identity, error) {
	return nil, auth.ErrVerificationFailed
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "a",
		RefreshSecret: "b",
		Issuer:        tokenIssuer,
	})
	require.NoError(t, err)

	cfg := config.Config{
		FrontendURL:     "https://app.example",
		DefaultReturnTo: "/dashboard",
		FailurePath:     "/login",
	}
	infra := &Infra{DB: &db.DB{Gorm: dbtest.Open(t)}}
	return newRouter(cfg, infra, stubProvider{}, issuer)
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterWiresAuthRoutes(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oauth/google", nil))
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?error=access_denied", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://app.example/login?error=oauth_failed", rec.Header().Get("Location"))
}
