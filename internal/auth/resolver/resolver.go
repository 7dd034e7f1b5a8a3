package resolver

import (
	"context"

	"planner-auth/internal/account"
	"planner-auth/internal/auth"
)

// Resolver determines which internal account an external identity belongs to.
// It is the ONLY place where identity-to-account mapping logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		identity *auth.Identity,
	) (*account.Account, error)
}
