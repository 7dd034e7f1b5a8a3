package handler

import (
	"errors"
	"net/http"

	"planner-auth/internal/account"
	"planner-auth/internal/auth/token"
	"planner-auth/internal/logger"
	"planner-auth/internal/session"

	"github.com/gin-gonic/gin"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refresh rotates the credential pair. The refresh token is taken from the
// cookie when present (redirect-mode clients), otherwise from the body.
func (h *Handler) refresh(c *gin.Context) {
	raw, err := c.Cookie(session.RefreshCookieName)
	fromCookie := err == nil && raw != ""
	if !fromCookie {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		raw = req.RefreshToken
	}
	if raw == "" {
		fail(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	ctx := c.Request.Context()

	acct, err := h.issuer.VerifyRefresh(ctx, raw, h.accounts)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) || errors.Is(err, token.ErrRevoked) {
			if fromCookie {
				session.ClearTokenCookies(c.Writer, h.opts.Cookies)
			}
			fail(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		logger.Error("refresh failed", map[string]any{"error": err.Error()})
		fail(c, http.StatusInternalServerError, "Refresh failed")
		return
	}

	pair, err := h.issuer.Issue(acct)
	if err != nil {
		logger.Error("refresh issue failed", map[string]any{"error": err.Error()})
		fail(c, http.StatusInternalServerError, "Refresh failed")
		return
	}

	if fromCookie {
		h.setTokenCookies(c, pair)
	}

	c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Token refreshed",
		Data: tokenData{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	})
}

// Logout clears the credential cookies. Tokens held elsewhere stay valid
// until expiry; logout-all revokes them.
func (h *Handler) Logout(c *gin.Context) {
	session.ClearTokenCookies(c.Writer, h.opts.Cookies)
	c.Status(http.StatusNoContent)
}

// logoutAll bumps the revocation counter, invalidating every refresh token
// issued to the account so far.
func (h *Handler) logoutAll(c *gin.Context) {
	userID := c.GetString("userID")

	acct, err := h.accounts.IncrementTokenVersion(c.Request.Context(), userID)
	if errors.Is(err, account.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		logger.Error("logout-all failed", map[string]any{"error": err.Error()})
		fail(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	logger.Info("sessions revoked", map[string]any{
		"account_id":    acct.ID,
		"token_version": acct.TokenVersion,
	})

	session.ClearTokenCookies(c.Writer, h.opts.Cookies)
	c.Status(http.StatusNoContent)
}

func (h *Handler) me(c *gin.Context) {
	acct, err := h.accounts.FindByID(c.Request.Context(), c.GetString("userID"))
	if errors.Is(err, account.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		logger.Error("load account failed", map[string]any{"error": err.Error()})
		fail(c, http.StatusInternalServerError, "Could not load account")
		return
	}

	c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    userData{User: toPublicUser(acct)},
	})
}
