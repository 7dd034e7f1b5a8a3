package handler

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

const (
	stateCookieName = "__oauth_state"
	pkceCookieName  = "__oauth_pkce"
	flowTTL         = 5 * time.Minute
)

// statePayload is the part of the OAuth state that survives the provider
// round trip besides the nonce. It is never trusted without validation.
type statePayload struct {
	ReturnTo string `json:"returnTo"`
}

// encodeState builds "<nonce>.<base64url(json payload)>". The nonce is
// also kept in a cookie so the callback can tie the state to this browser.
func encodeState(nonce string, returnTo string) (string, error) {
	b, err := json.Marshal(statePayload{ReturnTo: returnTo})
	if err != nil {
		return "", err
	}
	return nonce + "." + base64.RawURLEncoding.EncodeToString(b), nil
}

func splitState(state string) (nonce string, payload string, ok bool) {
	nonce, payload, ok = strings.Cut(state, ".")
	return nonce, payload, ok && nonce != ""
}

// returnToFromState decodes the destination carried in the state payload.
// Every decoding or validation failure yields fallback.
func returnToFromState(payload string, prefixes []string, fallback string) string {
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return fallback
	}

	var p statePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fallback
	}

	return SafeReturnTo(p.ReturnTo, prefixes, fallback)
}
