package ports

import (
	"context"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

// RegisterInput carries one browser-submitted registration form.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegistrationService wraps the base registration flow with the legacy
// provisioning hooks: a fail-closed pre-check against the CRM before the
// local identity is created, and a best-effort mirror of CRM data after.
type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
}
