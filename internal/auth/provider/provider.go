package provider

import (
	"context"

	"planner-auth/internal/auth"
)

// Verifier turns provider-issued credentials into a verified identity.
// Implementations return identity facts only and must not perform user
// creation, linking, or session management. Every failure wraps
// auth.ErrVerificationFailed.
type Verifier interface {
	// VerifyIDToken validates an ID token the client obtained directly
	// from the provider (e.g. a one-tap credential).
	VerifyIDToken(ctx context.Context, rawIDToken string) (*auth.Identity, error)

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns a normalized identity.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}

// OAuthProvider is the provider used by the redirect flow.
type OAuthProvider interface {
	Verifier

	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string
}
