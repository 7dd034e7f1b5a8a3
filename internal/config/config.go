package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URI"`

	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// DefaultReturnTo is where a successful redirect login lands when the
	// requested destination is absent or rejected.
	DefaultReturnTo string `env:"OAUTH_DEFAULT_RETURN_TO" envDefault:"/dashboard"`
	FailurePath     string `env:"OAUTH_FAILURE_PATH" envDefault:"/login"`

	// ReturnToPrefixes restricts post-login destinations to these path
	// prefixes. Empty allows any path on the frontend origin.
	ReturnToPrefixes []string `env:"OAUTH_RETURN_TO_PREFIXES" envSeparator:","`

	// CookieSecure overrides the Secure cookie attribute. When unset,
	// cookies are Secure only in production.
	CookieSecure *bool `env:"COOKIE_SECURE"`
	// CookieDomain is empty for host-only cookies.
	CookieDomain string `env:"COOKIE_DOMAIN"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	// RedisAddr enables the one-time state nonce guard. Empty disables it.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.ReturnToPrefixes = trimCSV(cfg.ReturnToPrefixes)

	return cfg, nil
}

// Validate reports missing or inconsistent required settings.
func (c Config) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"GOOGLE_CLIENT_ID", c.GoogleClientID},
		{"GOOGLE_CLIENT_SECRET", c.GoogleClientSecret},
		{"GOOGLE_REDIRECT_URI", c.GoogleRedirectURL},
		{"ACCESS_TOKEN_SECRET", c.AccessTokenSecret},
		{"REFRESH_TOKEN_SECRET", c.RefreshTokenSecret},
		{"DATABASE_DSN", c.DatabaseDSN},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("config: %s is required", r.name))
		}
	}

	if c.AccessTokenSecret != "" && c.AccessTokenSecret == c.RefreshTokenSecret {
		errs = append(errs, errors.New("config: access and refresh token secrets must differ"))
	}
	if !strings.HasPrefix(c.DefaultReturnTo, "/") || !strings.HasPrefix(c.FailurePath, "/") {
		errs = append(errs, errors.New("config: redirect paths must start with /"))
	}

	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// SecureCookies resolves the effective Secure attribute for issued cookies.
func (c Config) SecureCookies() bool {
	if c.CookieSecure != nil {
		return *c.CookieSecure
	}
	return c.IsProduction()
}

func trimCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
