package handler

import (
	"net/http"
	"strings"

	"planner-auth/internal/logger"

	"github.com/gin-gonic/gin"
)

type googleTokenRequest struct {
	Token string `json:"token"`
}

// googleAuth is direct mode: the client posts a provider ID token and gets
// the credential pair back in the body. No cookies are set.
func (h *Handler) googleAuth(c *gin.Context) {
	var req googleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		fail(c, http.StatusBadRequest, "Google token is required")
		return
	}

	ctx := c.Request.Context()

	identity, err := h.provider.VerifyIDToken(ctx, req.Token)
	if err != nil {
		logger.Warn("direct login verification failed", map[string]any{
			"error": err.Error(),
			"ip":    c.ClientIP(),
		})
		fail(c, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	acct, pair, err := h.signIn(ctx, identity)
	if err != nil {
		status := statusFor(err)
		logger.Error("direct login failed", map[string]any{
			"error":  err.Error(),
			"status": status,
		})
		if status == http.StatusInternalServerError {
			fail(c, status, "Login failed")
		} else {
			fail(c, status, "Invalid Google token")
		}
		return
	}

	logger.Info("login success", map[string]any{
		"account_id": acct.ID,
		"mode":       "direct",
		"ip":         c.ClientIP(),
	})

	c.JSON(http.StatusOK, envelope{
		Success: true,
		Message: "Google login successful",
		Data: loginData{
			User:         toPublicUser(acct),
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	})
}
