package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

// MigrationService implements the login-time credential-migration state
// machine: it validates submitted credentials against the legacy CRM,
// resolves or lazily creates the local identity, and merges the legacy
// profile attributes into it.
//
// Every failure past credential submission surfaces as
// domain.ErrInvalidCredentials. Whether the CRM rejected the password, the
// CRM was unreachable, or the profile fetch failed is never distinguishable
// from the outside; the log carries the cause.
type MigrationService struct {
	legacy      ports.LegacyClient
	identities  ports.IdentityStore
	credentials ports.CredentialManager
	notes       ports.AuthNoteStore
	jwtSecret   string
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewMigrationService(
	legacy ports.LegacyClient,
	identities ports.IdentityStore,
	credentials ports.CredentialManager,
	notes ports.AuthNoteStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *MigrationService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &MigrationService{
		legacy:      legacy,
		identities:  identities,
		credentials: credentials,
		notes:       notes,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Authenticate drives one login attempt end to end: the validate phase
// followed by the commit phase, bridged by the single-use auth note.
func (s *MigrationService) Authenticate(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
	state := domain.FlowStart

	if input.Cancel {
		if err := advance(&state, domain.FlowCancelled); err != nil {
			return nil, err
		}
		return &ports.AuthenticateResult{State: state}, nil
	}

	if err := advance(&state, domain.FlowCredentialsSubmitted); err != nil {
		return nil, err
	}

	// Blank username or password means this identity was never backed by the
	// legacy system: delegate entirely to the local credential check.
	if input.Username == "" || input.Password == "" {
		return s.authenticateLocal(ctx, &state, input)
	}

	if err := s.validate(ctx, &state, input); err != nil {
		return s.fail(&state, err)
	}

	identity, migrated, err := s.commit(ctx, &state, input)
	if err != nil {
		return s.fail(&state, err)
	}

	token, err := issueSessionToken(identity, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return s.fail(&state, err)
	}

	if err := advance(&state, domain.FlowSucceeded); err != nil {
		return nil, err
	}
	return &ports.AuthenticateResult{State: state, Identity: identity, Token: token, Migrated: migrated}, nil
}

// validate is the CredentialsSubmitted → LegacyAuthenticated transition:
// checks the submitted credentials against the CRM, requires the local check
// on top when a local identity already exists, and stashes the legacy login
// token for the commit phase.
func (s *MigrationService) validate(ctx context.Context, state *domain.FlowState, input ports.AuthenticateInput) error {
	login, err := s.legacy.Login(ctx, input.Username, input.Password)
	if err != nil {
		return err
	}
	if login.Status != http.StatusOK {
		s.logger.Debug().Int("status", login.Status).Msg("legacy login rejected")
		return domain.ErrInvalidCredentials
	}

	// A legacy-valid login must not bypass local lockouts or disabled flags:
	// when a local identity already exists, its own credential check has to
	// pass as well. Without a local identity there is no local credential to
	// check, so legacy success alone suffices.
	identity, err := s.identities.FindByEmail(ctx, input.Username)
	switch {
	case err == nil:
		if err := s.credentials.Validate(ctx, identity, input.Password); err != nil {
			return err
		}
	case err == domain.ErrIdentityNotFound:
		// first login of a not-yet-migrated customer
	default:
		return err
	}

	if err := s.notes.Set(ctx, input.SessionID, login.LoginToken); err != nil {
		return err
	}
	return advance(state, domain.FlowLegacyAuthenticated)
}

// commit consumes the stashed login token, decodes the legacy customer ID
// from it, fetches the profile, and resolves or creates the local identity
// with both CRM attributes set to the freshly fetched values.
func (s *MigrationService) commit(ctx context.Context, state *domain.FlowState, input ports.AuthenticateInput) (*domain.Identity, bool, error) {
	note, err := s.notes.Consume(ctx, input.SessionID)
	if err != nil {
		return nil, false, err
	}
	if note == "" {
		return nil, false, domain.ErrInvalidCredentials
	}

	subject, err := decodeLoginSubject(note)
	if err != nil {
		return nil, false, err
	}

	profile, err := s.legacy.GetProfile(ctx, note)
	if err != nil {
		return nil, false, err
	}
	if profile.Status != http.StatusOK {
		s.logger.Debug().Int("status", profile.Status).Msg("legacy profile fetch rejected")
		return nil, false, domain.ErrInvalidCredentials
	}

	migrated := false
	identity, err := s.identities.FindByEmail(ctx, input.Username)
	if err == domain.ErrIdentityNotFound {
		identity, err = s.provision(ctx, input, profile)
		migrated = err == nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := advance(state, domain.FlowLocalIdentityResolved); err != nil {
		return nil, false, err
	}

	identity.CRMCustomerID = subject
	identity.CRMCustomerAddress = profile.Address
	identity.UpdatedAt = time.Now().UTC()
	if err := advance(state, domain.FlowAttributesMerged); err != nil {
		return nil, false, err
	}

	updated, err := s.identities.Update(ctx, identity)
	if err != nil {
		return nil, false, err
	}
	return updated, migrated, nil
}

// provision creates the local identity for a legacy customer on first login,
// carrying over the legacy name fields and registering a local credential
// derived from the submitted password.
func (s *MigrationService) provision(ctx context.Context, input ports.AuthenticateInput, profile *domain.CustomerProfile) (*domain.Identity, error) {
	now := time.Now().UTC()
	created, err := s.identities.Create(ctx, &domain.Identity{
		Email:     input.Username,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.credentials.Register(ctx, created, input.Password); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("identity migrated from legacy CRM")
	return created, nil
}

// authenticateLocal handles identities that were never backed by the legacy
// system: a plain local credential check with no CRM involvement.
func (s *MigrationService) authenticateLocal(ctx context.Context, state *domain.FlowState, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
	identity, err := s.identities.FindByEmail(ctx, input.Username)
	if err != nil {
		return s.fail(state, err)
	}
	if err := s.credentials.Validate(ctx, identity, input.Password); err != nil {
		return s.fail(state, err)
	}

	token, err := issueSessionToken(identity, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return s.fail(state, err)
	}

	*state = domain.FlowSucceeded
	return &ports.AuthenticateResult{State: *state, Identity: identity, Token: token}, nil
}

// fail collapses every failure cause into the uniform invalid-credentials
// outcome. The cause is logged, never surfaced.
func (s *MigrationService) fail(state *domain.FlowState, cause error) (*ports.AuthenticateResult, error) {
	if cause != domain.ErrInvalidCredentials {
		s.logger.Warn().Err(cause).Msg("migration login failed")
	}
	*state = domain.FlowFailed
	return &ports.AuthenticateResult{State: *state}, domain.ErrInvalidCredentials
}

func advance(state *domain.FlowState, next domain.FlowState) error {
	if !state.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}
	*state = next
	return nil
}
