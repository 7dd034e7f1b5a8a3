package auth

import "errors"

// Error kinds observable outside the auth packages. Callers classify with
// errors.Is and expose only the kind, never the wrapped detail.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrVerificationFailed = errors.New("identity verification failed")
	ErrStoreFailure       = errors.New("account store failure")
)
