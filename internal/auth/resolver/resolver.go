// Package resolver maps a canonical provider identity to a local user,
// creating the user and its social profile together when the identity has
// never been seen.
package resolver

import (
	"context"
	"errors"

	"github.com/Dmc0125/task-app/internal/auth"
)

// Store is the narrow persistence surface the resolver needs. Lookups are
// keyed on (provider, provider id): a provider_id is only unique within
// one provider, and a cross-provider collision must not conflate
// identities.
type Store interface {
	// FindByProviderIdentity returns the owning user id for an already
	// linked identity, or found=false when the identity is unknown.
	FindByProviderIdentity(ctx context.Context, p auth.Provider, providerID string) (userID int64, found bool, err error)

	// CreateUserWithProfile inserts a new user and its social profile as
	// a single all-or-nothing unit and returns the new user id.
	CreateUserWithProfile(ctx context.Context, identity *auth.Identity) (int64, error)
}

type Resolver struct {
	store Store
}

func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the local user id for the identity, creating the
// user+profile pair if none exists. Two concurrent calls for the same
// unseen identity are arbitrated by the storage-level uniqueness of
// (provider_type, provider_id): the loser's transaction fails and the
// error surfaces to the caller as a generic failure.
func (r *Resolver) Resolve(ctx context.Context, identity *auth.Identity) (int64, error) {
	if identity == nil {
		return 0, errors.New("identity is nil")
	}

	userID, found, err := r.store.FindByProviderIdentity(ctx, identity.Provider, identity.ProviderID)
	if err != nil {
		return 0, err
	}
	if found {
		return userID, nil
	}

	return r.store.CreateUserWithProfile(ctx, identity)
}
