package resolver

import (
	"context"
	"errors"
	"fmt"

	"planner-auth/internal/account"
	"planner-auth/internal/auth"
	"planner-auth/internal/auth/credentials"
	"planner-auth/internal/logger"

	"github.com/google/uuid"
)

// StoreResolver resolves identities by email against the account store.
//
// Rules:
//   - unseen email: create the account with the link attached
//   - known email without a link: attach the link
//   - known email with a link: keep the link, whatever subject is presented
//
// Non-empty name and picture claims refresh the profile in every case.
type StoreResolver struct {
	store  account.Store
	hasher credentials.Hasher
}

func NewStoreResolver(store account.Store, hasher credentials.Hasher) *StoreResolver {
	return &StoreResolver{store: store, hasher: hasher}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (*account.Account, error) {

	if identity == nil {
		return nil, fmt.Errorf("%w: identity is nil", auth.ErrInvalidInput)
	}
	email := account.NormalizeEmail(identity.Email)
	if email == "" || identity.ProviderUserID == "" || identity.Provider == "" {
		return nil, fmt.Errorf("%w: identity missing email, subject or provider", auth.ErrInvalidInput)
	}

	// 1. Email lookup
	acct, err := r.store.FindByEmail(ctx, email)
	if err == nil {
		return r.refresh(ctx, acct, identity)
	}
	if !errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("%w: find by email: %w", auth.ErrStoreFailure, err)
	}

	// 2. Create new account
	acct, err = r.create(ctx, email, identity)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, account.ErrDuplicateEmail) {
		return nil, err
	}

	// 3. A concurrent request created the row first; treat it as existing.
	logger.Info("account create race lost, linking existing row", map[string]any{
		"provider": identity.Provider,
	})

	acct, err = r.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: re-read after create race: %w", auth.ErrStoreFailure, err)
	}
	return r.refresh(ctx, acct, identity)
}

func (r *StoreResolver) create(
	ctx context.Context,
	email string,
	identity *auth.Identity,
) (*account.Account, error) {

	hash, err := r.hasher.HashPlaceholder(identity.ProviderUserID)
	if err != nil {
		return nil, fmt.Errorf("resolver: placeholder credential: %w", err)
	}

	acct := &account.Account{
		ID:                      uuid.NewString(),
		Email:                   email,
		Name:                    identity.Name,
		AvatarURL:               identity.PictureURL,
		CredentialHash:          hash,
		LinkedProvider:          identity.Provider,
		LinkedProviderSubjectID: identity.ProviderUserID,
		TokenVersion:            0,
	}

	if err := r.store.Create(ctx, acct); err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create: %w", auth.ErrStoreFailure, err)
	}

	logger.Info("account created", map[string]any{
		"account_id": acct.ID,
		"provider":   identity.Provider,
	})

	return acct, nil
}

// refresh applies profile claims and attaches the link when none exists.
// The store re-checks the "no link" condition inside its UPDATE.
func (r *StoreResolver) refresh(
	ctx context.Context,
	acct *account.Account,
	identity *auth.Identity,
) (*account.Account, error) {

	upd := account.Update{}
	if identity.Name != acct.Name {
		upd.Name = identity.Name
	}
	if identity.PictureURL != acct.AvatarURL {
		upd.AvatarURL = identity.PictureURL
	}
	if !acct.IsLinked() {
		upd.Link = &account.Link{
			Provider:  identity.Provider,
			SubjectID: identity.ProviderUserID,
		}
	}

	if upd.IsEmpty() {
		return acct, nil
	}

	updated, err := r.store.Update(ctx, acct.ID, upd)
	if err != nil {
		return nil, fmt.Errorf("%w: update: %w", auth.ErrStoreFailure, err)
	}

	if upd.Link != nil {
		logger.Info("account linked", map[string]any{
			"account_id": updated.ID,
			"provider":   updated.LinkedProvider,
		})
	}

	return updated, nil
}
