package ports

import (
	"context"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

// LegacyClient talks to the legacy CRM system. Every operation reports
// domain.ErrLegacyUnavailable for any failure it absorbed (missing
// configuration, transport error, unparsable body); no other error crosses
// this boundary. Results carry the raw HTTP status where the caller is
// expected to interpret it.
type LegacyClient interface {
	// Login authenticates a customer's own credentials. The call itself is
	// authenticated with the service token; the customer password travels
	// only in the request body.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)

	// GetProfile fetches the profile of the customer the login token belongs
	// to. The token is the sole credential on this call.
	GetProfile(ctx context.Context, loginToken string) (*domain.CustomerProfile, error)

	// CreateCustomer creates a customer record; true iff the CRM answered
	// 201 Created.
	CreateCustomer(ctx context.Context, email, password, firstName, lastName string) (bool, error)

	// ExistsCustomer reports whether a customer with this email exists;
	// true iff the CRM answered 200 OK.
	ExistsCustomer(ctx context.Context, email string) (bool, error)
}
