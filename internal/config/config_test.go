package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/oauth/google/callback")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("DATABASE_DSN", "postgres://localhost/planner?sslmode=disable")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "/dashboard", cfg.DefaultReturnTo)
	assert.Equal(t, "/login", cfg.FailurePath)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Nil(t, cfg.CookieSecure)
	assert.Nil(t, cfg.ReturnToPrefixes)
	assert.False(t, cfg.SecureCookies())
}

func TestLoadOptionalFields(t *testing.T) {
	setRequired(t)
	t.Setenv("FRONTEND_URL", "https://app.example.com/")
	t.Setenv("OAUTH_RETURN_TO_PREFIXES", "/dashboard, /projects,,")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"/dashboard", "/projects"}, cfg.ReturnToPrefixes)
	require.NotNil(t, cfg.CookieSecure)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.SecureCookies(), "explicit override wins over APP_ENV")
}

func TestSecureCookiesFollowsEnvironment(t *testing.T) {
	assert.True(t, Config{AppEnv: "production"}.SecureCookies())
	assert.False(t, Config{AppEnv: "development"}.SecureCookies())
}

func TestValidate(t *testing.T) {
	cfg := Config{DefaultReturnTo: "/dashboard", FailurePath: "/login"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
	assert.Contains(t, err.Error(), "DATABASE_DSN")
	assert.Equal(t, err.Error(), cfg.Validate().Error())
	assert.Equal(t, strings.Join([]string{
		"config: GOOGLE_CLIENT_ID is required",
		"config: GOOGLE_CLIENT_SECRET is required",
		"config: GOOGLE_REDIRECT_URI is required",
		"config: ACCESS_TOKEN_SECRET is required",
		"config: REFRESH_TOKEN_SECRET is required",
		"config: DATABASE_DSN is required",
	}, "\n"), err.Error())

	setRequired(t)
	cfg, err = Load()
	require.NoError(t, err)
	cfg.RefreshTokenSecret = cfg.AccessTokenSecret
	assert.ErrorContains(t, cfg.Validate(), "must differ")

	cfg.RefreshTokenSecret = "other"
	cfg.FailurePath = "login"
	assert.ErrorContains(t, cfg.Validate(), "must start with /")
}
