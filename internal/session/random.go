package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const nonceSize = 32 // 256 bits

// NewNonce returns a URL-safe random value suitable for state nonces.
func NewNonce() (string, error) {
	b := make([]byte, nonceSize)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewPKCE returns a code verifier and its S256 challenge.
func NewPKCE() (verifier string, challenge string, err error) {
	verifier, err = NewNonce()
	if err != nil {
		return "", "", err
	}
	return verifier, PKCEChallenge(verifier), nil
}

func PKCEChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
