package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"planner-auth/internal/account"
	"planner-auth/internal/auth"
	"planner-auth/internal/auth/provider"
	"planner-auth/internal/auth/resolver"
	"planner-auth/internal/auth/token"
	"planner-auth/internal/logger"
	"planner-auth/internal/session"

	"github.com/gin-gonic/gin"
)

// Accounts is the part of the account store the session endpoints need
// beyond identity resolution.
type Accounts interface {
	FindByID(ctx context.Context, id string) (*account.Account, error)
	IncrementTokenVersion(ctx context.Context, id string) (*account.Account, error)
}

// Options configures credential delivery.
type Options struct {
	// FrontendURL is the origin post-login redirects point at, without a
	// trailing slash.
	FrontendURL string

	// DefaultReturnTo is used when the requested destination is absent,
	// undecodable or rejected.
	DefaultReturnTo string

	// FailurePath receives every failed redirect login.
	FailurePath string

	// ReturnToPrefixes, when non-empty, restricts destinations to these
	// path prefixes. Empty allows any path on FrontendURL.
	ReturnToPrefixes []string

	Cookies session.CookieOptions
}

type Handler struct {
	provider provider.OAuthProvider
	resolver resolver.Resolver
	issuer   *token.Issuer
	accounts Accounts

	// nonces is optional; nil disables the one-time state check.
	nonces session.NonceStore

	opts Options
	once sync.Once
}

func NewHandler(
	p provider.OAuthProvider,
	r resolver.Resolver,
	issuer *token.Issuer,
	accounts Accounts,
	nonces session.NonceStore,
	opts Options,
) *Handler {
	if opts.DefaultReturnTo == "" {
		opts.DefaultReturnTo = "/dashboard"
	}
	if opts.FailurePath == "" {
		opts.FailurePath = "/login"
	}
	return &Handler{
		provider: p,
		resolver: r,
		issuer:   issuer,
		accounts: accounts,
		nonces:   nonces,
		opts:     opts,
	}
}

// RegisterRoutes mounts the auth endpoints. Repeated calls are no-ops.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	h.once.Do(func() {
		r.POST("/api/auth/google", h.googleAuth)
		r.GET("/api/oauth/google", h.login)
		r.GET("/api/oauth/google/callback", h.callback)

		r.POST("/api/auth/refresh", h.refresh)
		r.POST("/api/auth/logout", h.Logout)
		r.POST("/api/auth/logout-all", requireAuth, h.logoutAll)
		r.GET("/api/auth/me", requireAuth, h.me)

		logger.Debug("auth routes registered", nil)
	})
}

// signIn runs the shared tail of both entry points: resolve, then issue.
func (h *Handler) signIn(
	ctx context.Context,
	identity *auth.Identity,
) (*account.Account, token.Pair, error) {

	acct, err := h.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, token.Pair{}, err
	}

	pair, err := h.issuer.Issue(acct)
	if err != nil {
		return nil, token.Pair{}, err
	}

	return acct, pair, nil
}

func (h *Handler) setTokenCookies(c *gin.Context, pair token.Pair) {
	session.SetTokenCookies(
		c.Writer,
		pair.AccessToken,
		token.AccessTokenTTL,
		pair.RefreshToken,
		token.RefreshTokenTTL,
		h.opts.Cookies,
	)
}

// statusFor maps error kinds to HTTP status codes. Anything unclassified is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrVerificationFailed):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
