package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

// RegistrationService wraps the base registration flow with legacy CRM
// provisioning: a fail-closed existence pre-check before the local identity
// is created, and a best-effort mirror of the freshly created CRM customer
// onto the new identity afterwards.
type RegistrationService struct {
	legacy      ports.LegacyClient
	identities  ports.IdentityStore
	credentials ports.CredentialManager
	logger      zerolog.Logger
}

func NewRegistrationService(
	legacy ports.LegacyClient,
	identities ports.IdentityStore,
	credentials ports.CredentialManager,
	logger zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		legacy:      legacy,
		identities:  identities,
		credentials: credentials,
		logger:      logger,
	}
}

// Register runs the full registration flow: pre-check, local identity
// creation, then legacy provisioning.
func (s *RegistrationService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Identity, error) {
	if err := s.preCheck(ctx, input.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity, err := s.identities.Create(ctx, &domain.Identity{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.credentials.Register(ctx, identity, input.Password); err != nil {
		return nil, err
	}

	return s.provisionLegacy(ctx, identity, input)
}

// preCheck rejects registration when a legacy customer with this email
// already exists. An unavailable legacy system is treated exactly like an
// existing customer: if the check cannot be performed, registration is
// blocked rather than risking a duplicate.
func (s *RegistrationService) preCheck(ctx context.Context, email string) error {
	exists, err := s.legacy.ExistsCustomer(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("legacy existence check unavailable, failing closed")
		return domain.ErrEmailInUse
	}
	if exists {
		return domain.ErrEmailInUse
	}
	return nil
}

// provisionLegacy creates the CRM customer for a newly registered identity
// and mirrors the CRM's view of it (ID, address, canonical name) back onto
// the local record. Every failure aborts silently: the local identity stays,
// without CRM linkage and without rollback.
func (s *RegistrationService) provisionLegacy(ctx context.Context, identity *domain.Identity, input ports.RegisterInput) (*domain.Identity, error) {
	created, err := s.legacy.CreateCustomer(ctx, input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil || !created {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("legacy customer not created, identity left without CRM linkage")
		return identity, nil
	}

	login, err := s.legacy.Login(ctx, input.Email, input.Password)
	if err != nil || login.Status != http.StatusOK {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("legacy login after customer creation failed")
		return identity, nil
	}

	subject, err := decodeLoginSubject(login.LoginToken)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("legacy login token undecodable")
		return identity, nil
	}

	profile, err := s.legacy.GetProfile(ctx, login.LoginToken)
	if err != nil || profile.Status != http.StatusOK {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("legacy profile fetch after customer creation failed")
		return identity, nil
	}

	identity.FirstName = profile.FirstName
	identity.LastName = profile.LastName
	identity.CRMCustomerID = subject
	identity.CRMCustomerAddress = profile.Address
	identity.UpdatedAt = time.Now().UTC()

	updated, err := s.identities.Update(ctx, identity)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("persisting CRM attributes failed")
		return identity, nil
	}

	s.logger.Info().Str("email", updated.Email).Str("crm_customer_id", subject).Msg("identity linked to new legacy customer")
	return updated, nil
}
