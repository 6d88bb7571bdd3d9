package ports

import (
	"context"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

// IdentityStore is the persistence boundary for local identities.
// FindByEmail returns domain.ErrIdentityNotFound when no record matches.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	Update(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}

// CredentialManager owns local password material. Validate enforces the
// store's own credential policy (hash comparison, disabled flags); Register
// derives and persists a credential for an identity that has none yet.
type CredentialManager interface {
	Validate(ctx context.Context, identity *domain.Identity, password string) error
	Register(ctx context.Context, identity *domain.Identity, password string) error
}
