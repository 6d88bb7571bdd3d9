package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

// BcryptCredentialManager is the local credential subsystem: bcrypt hashes
// persisted on the identity record.
type BcryptCredentialManager struct {
	identities ports.IdentityStore
}

func NewBcryptCredentialManager(identities ports.IdentityStore) *BcryptCredentialManager {
	return &BcryptCredentialManager{identities: identities}
}

// Validate checks a password against the identity's stored hash. Disabled
// identities and identities without a registered credential never validate.
func (m *BcryptCredentialManager) Validate(_ context.Context, identity *domain.Identity, password string) error {
	if !identity.Enabled || identity.PasswordHash == "" {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Register derives a bcrypt hash from the password and persists it on the
// identity.
func (m *BcryptCredentialManager) Register(ctx context.Context, identity *domain.Identity, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	identity.PasswordHash = string(hash)
	if _, err := m.identities.Update(ctx, identity); err != nil {
		return err
	}
	return nil
}
