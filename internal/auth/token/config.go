package token

import (
	"errors"
	"time"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Config configures the issuer. Access and refresh tokens are signed with
// separate HMAC secrets.
type Config struct {
	AccessSecret  string
	RefreshSecret string

	// Issuer is the "iss" claim. Empty omits it and skips the check.
	Issuer string

	// Now overrides the clock. Nil uses time.Now.
	Now func() time.Time
}

func (c *Config) validate() error {
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return errors.New("token: access and refresh secrets are required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return errors.New("token: access and refresh secrets must differ")
	}
	return nil
}
