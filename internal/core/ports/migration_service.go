package ports

import (
	"context"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

// AuthenticateInput carries one browser-submitted login form.
type AuthenticateInput struct {
	SessionID string
	Username  string
	Password  string
	Cancel    bool
}

// AuthenticateResult is the terminal outcome of one migration login attempt.
type AuthenticateResult struct {
	State    domain.FlowState
	Identity *domain.Identity
	Token    string
	// Migrated is true when this attempt created the local identity from
	// legacy customer data.
	Migrated bool
}

// MigrationService runs the login-time credential-migration state machine.
type MigrationService interface {
	Authenticate(ctx context.Context, input AuthenticateInput) (*AuthenticateResult, error)
}
