package handler

import (
	"crypto/subtle"
	"net/http"

	"planner-auth/internal/logger"
	"planner-auth/internal/session"

	"github.com/gin-gonic/gin"
)

// login starts redirect mode: it binds a fresh state nonce and PKCE
// verifier to this browser and sends the user to the provider.
func (h *Handler) login(c *gin.Context) {
	nonce, err := session.NewNonce()
	if err != nil {
		h.redirectFailure(c, "nonce_generation", err)
		return
	}

	verifier, challenge, err := session.NewPKCE()
	if err != nil {
		h.redirectFailure(c, "pkce_generation", err)
		return
	}

	returnTo := SafeReturnTo(c.Query("returnTo"), h.opts.ReturnToPrefixes, h.opts.DefaultReturnTo)

	state, err := encodeState(nonce, returnTo)
	if err != nil {
		h.redirectFailure(c, "state_encoding", err)
		return
	}

	maxAge := int(flowTTL.Seconds())
	session.SetFlowCookie(c.Writer, stateCookieName, nonce, maxAge, h.opts.Cookies)
	session.SetFlowCookie(c.Writer, pkceCookieName, verifier, maxAge, h.opts.Cookies)

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state, challenge))
}

// callback is the provider redirect target. Every outcome is a redirect:
// success lands on the validated destination with credential cookies set,
// anything else on the failure path with a generic error marker.
func (h *Handler) callback(c *gin.Context) {
	nonceCookie, _ := c.Cookie(stateCookieName)
	codeVerifier, _ := c.Cookie(pkceCookieName)
	h.clearFlowCookies(c)

	// CASE 1: provider reported an error (user cancelled, consent denied)
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": h.provider.Name(),
			"error":    errParam,
		})
		h.redirectFailure(c, "provider_error", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		fail(c, http.StatusBadRequest, "Authorization code is required")
		return
	}

	nonce, payload, ok := splitState(c.Query("state"))
	if !ok || nonceCookie == "" ||
		subtle.ConstantTimeCompare([]byte(nonce), []byte(nonceCookie)) != 1 {
		h.redirectFailure(c, "state_mismatch", nil)
		return
	}

	ctx := c.Request.Context()

	if h.nonces != nil {
		fresh, err := h.nonces.Consume(ctx, nonce, flowTTL)
		if err != nil {
			h.redirectFailure(c, "nonce_store", err)
			return
		}
		if !fresh {
			h.redirectFailure(c, "state_replayed", nil)
			return
		}
	}

	if codeVerifier == "" {
		h.redirectFailure(c, "missing_pkce_verifier", nil)
		return
	}

	// CASE 2: normal callback
	identity, err := h.provider.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		h.redirectFailure(c, "verification", err)
		return
	}

	acct, pair, err := h.signIn(ctx, identity)
	if err != nil {
		h.redirectFailure(c, "sign_in", err)
		return
	}

	h.setTokenCookies(c, pair)

	returnTo := returnToFromState(payload, h.opts.ReturnToPrefixes, h.opts.DefaultReturnTo)

	logger.Info("login success", map[string]any{
		"account_id": acct.ID,
		"mode":       "redirect",
		"return_to":  returnTo,
		"ip":         c.ClientIP(),
	})

	c.Redirect(http.StatusFound, h.opts.FrontendURL+returnTo+"?auth=success")
}

func (h *Handler) clearFlowCookies(c *gin.Context) {
	session.SetFlowCookie(c.Writer, stateCookieName, "", -1, h.opts.Cookies)
	session.SetFlowCookie(c.Writer, pkceCookieName, "", -1, h.opts.Cookies)
}

// redirectFailure logs the cause and redirects with a generic marker only.
func (h *Handler) redirectFailure(c *gin.Context, reason string, err error) {
	fields := map[string]any{
		"reason": reason,
		"ip":     c.ClientIP(),
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Warn("oauth redirect login failed", fields)

	c.Redirect(http.StatusFound, h.opts.FrontendURL+h.opts.FailurePath+"?error=oauth_failed")
}
