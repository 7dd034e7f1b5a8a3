// Package token mints and verifies the session credential pair.
//
// Access tokens carry the account id and live 15 minutes. Refresh tokens
// also carry the account's revocation counter (token version) and live
// 7 days; they are only valid while that counter still matches the stored
// account.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"planner-auth/internal/account"
)

var (
	ErrInvalidToken = errors.New("token: invalid")
	ErrRevoked      = errors.New("token: revoked")
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	gojwt.RegisteredClaims
	UserID string `json:"userId"`
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	gojwt.RegisteredClaims
	UserID       string `json:"userId"`
	TokenVersion int    `json:"tokenVersion"`
}

// Pair is the issued credential pair.
type Pair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AccountFinder loads the current account state for refresh verification.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*account.Account, error)
}

type Issuer struct {
	cfg    Config
	method gojwt.SigningMethod
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Issuer{cfg: cfg, method: gojwt.SigningMethodHS256}, nil
}

// Issue signs a fresh pair for acct. It has no side effects; the token
// version embedded is the one carried by acct.
func (i *Issuer) Issue(acct *account.Account) (Pair, error) {
	if acct == nil || acct.ID == "" {
		return Pair{}, errors.New("token: account is required")
	}

	now := i.cfg.Now()
	accessExp := now.Add(AccessTokenTTL)
	refreshExp := now.Add(RefreshTokenTTL)

	access, err := i.sign(&AccessClaims{
		RegisteredClaims: i.registered(acct.ID, now, accessExp),
		UserID:           acct.ID,
	}, i.cfg.AccessSecret)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := i.sign(&RefreshClaims{
		RegisteredClaims: i.registered(acct.ID, now, refreshExp),
		UserID:           acct.ID,
		TokenVersion:     acct.TokenVersion,
	}, i.cfg.RefreshSecret)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ParseAccess checks signature and expiry of an access token.
func (i *Issuer) ParseAccess(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := i.parse(raw, claims, i.cfg.AccessSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidToken)
	}
	return claims, nil
}

// ParseRefresh checks signature and expiry of a refresh token. It does not
// consult the account; use VerifyRefresh for the revocation check.
func (i *Issuer) ParseRefresh(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := i.parse(raw, claims, i.cfg.RefreshSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidToken)
	}
	return claims, nil
}

// VerifyRefresh parses raw and compares its token version with the
// account's current one. A mismatch means the session was revoked.
func (i *Issuer) VerifyRefresh(ctx context.Context, raw string, accounts AccountFinder) (*account.Account, error) {
	claims, err := i.ParseRefresh(raw)
	if err != nil {
		return nil, err
	}

	acct, err := accounts.FindByID(ctx, claims.UserID)
	if errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown account", ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("token: load account: %w", err)
	}

	if acct.TokenVersion != claims.TokenVersion {
		return nil, ErrRevoked
	}
	return acct, nil
}

func (i *Issuer) registered(subject string, now, exp time.Time) gojwt.RegisteredClaims {
	return gojwt.RegisteredClaims{
		Issuer:    i.cfg.Issuer,
		Subject:   subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(exp),
	}
}

func (i *Issuer) sign(claims gojwt.Claims, secret string) (string, error) {
	signed, err := gojwt.NewWithClaims(i.method, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

func (i *Issuer) parse(raw string, claims gojwt.Claims, secret string) error {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{i.method.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(i.cfg.Now),
	}
	if i.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(i.cfg.Issuer))
	}

	tok, err := gojwt.ParseWithClaims(raw, claims, func(*gojwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}
