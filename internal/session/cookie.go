package session

import (
	"net/http"
	"time"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// CookieOptions defines how credential cookies are issued.
type CookieOptions struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string // empty for host-only cookies
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if !o.HttpOnly {
		o.HttpOnly = true // secure default
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetTokenCookies delivers the credential pair as two cookies whose
// lifetimes match the token lifetimes.
func SetTokenCookies(
	w http.ResponseWriter,
	accessToken string,
	accessTTL time.Duration,
	refreshToken string,
	refreshTTL time.Duration,
	opts CookieOptions,
) {
	setCookie(w, AccessCookieName, accessToken, int(accessTTL.Seconds()), opts)
	setCookie(w, RefreshCookieName, refreshToken, int(refreshTTL.Seconds()), opts)
}

// ClearTokenCookies removes both credential cookies from the client.
func ClearTokenCookies(w http.ResponseWriter, opts CookieOptions) {
	setCookie(w, AccessCookieName, "", -1, opts)
	setCookie(w, RefreshCookieName, "", -1, opts)
}

// SetFlowCookie stores short-lived redirect-flow values (state nonce, PKCE
// verifier). maxAge < 0 deletes the cookie.
func SetFlowCookie(w http.ResponseWriter, name, value string, maxAge int, opts CookieOptions) {
	setCookie(w, name, value, maxAge, opts)
}

func setCookie(w http.ResponseWriter, name, value string, maxAge int, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   maxAge,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
