package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

func newTestRegistrationService(legacy ports.LegacyClient, store *stubIdentityStore) *RegistrationService {
	return NewRegistrationService(legacy, store, NewBcryptCredentialManager(store), zerolog.Nop())
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:     "jane.roe@example.com",
		Password:  "completelyDifferentSecurePassword2!",
		FirstName: "Jane",
		LastName:  "Roe",
	}
}

func TestRegistration_Success_LinksLegacyCustomer(t *testing.T) {
	store := newStubIdentityStore()
	legacy := &stubLegacy{
		createdOK: true,
		loginResult: &domain.LoginResult{
			Status:     http.StatusOK,
			LoginToken: makeLoginToken(t, "0987654321"),
		},
		profileResult: &domain.CustomerProfile{
			Status:    http.StatusOK,
			FirstName: "Jane",
			LastName:  "Roe",
			Address:   "Oak Ave 2, 67890 Ogdenville",
		},
	}
	svc := newTestRegistrationService(legacy, store)

	identity, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if identity.CRMCustomerID != "0987654321" {
		t.Fatalf("expected crmCustomerId 0987654321, got %s", identity.CRMCustomerID)
	}
	if identity.CRMCustomerAddress != "Oak Ave 2, 67890 Ogdenville" {
		t.Fatalf("unexpected address: %s", identity.CRMCustomerAddress)
	}
	if identity.FirstName != "Jane" || identity.LastName != "Roe" {
		t.Fatalf("unexpected names: %s %s", identity.FirstName, identity.LastName)
	}

	stored, err := store.FindByEmail(context.Background(), "jane.roe@example.com")
	if err != nil {
		t.Fatalf("identity not persisted: %v", err)
	}
	creds := NewBcryptCredentialManager(store)
	if err := creds.Validate(context.Background(), stored, "completelyDifferentSecurePassword2!"); err != nil {
		t.Fatalf("registered credential does not validate: %v", err)
	}
}

func TestRegistration_ExistingLegacyCustomer_Rejected(t *testing.T) {
	store := newStubIdentityStore()
	legacy := &stubLegacy{exists: true}
	svc := newTestRegistrationService(legacy, store)

	if _, err := svc.Register(context.Background(), registerInput()); err != domain.ErrEmailInUse {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
	if len(store.identities) != 0 {
		t.Fatalf("rejected registration must not create an identity")
	}
}

func TestRegistration_ExistenceCheckUnavailable_FailsClosed(t *testing.T) {
	store := newStubIdentityStore()
	legacy := &stubLegacy{existsErr: domain.ErrLegacyUnavailable}
	svc := newTestRegistrationService(legacy, store)

	// An unanswerable existence check must behave exactly like "exists".
	if _, err := svc.Register(context.Background(), registerInput()); err != domain.ErrEmailInUse {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
	if len(store.identities) != 0 {
		t.Fatalf("fail-closed rejection must not create an identity")
	}
	if legacy.createCalls != 0 {
		t.Fatalf("no legacy customer may be created after a failed pre-check")
	}
}

func TestRegistration_CreateCustomerFails_SilentAbort(t *testing.T) {
	store := newStubIdentityStore()
	legacy := &stubLegacy{createdOK: false}
	svc := newTestRegistrationService(legacy, store)

	identity, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("post-commit failure must not fail registration: %v", err)
	}
	if identity.CRMCustomerID != "" {
		t.Fatalf("identity must stay without CRM linkage, got %s", identity.CRMCustomerID)
	}
	if _, err := store.FindByEmail(context.Background(), "jane.roe@example.com"); err != nil {
		t.Fatalf("local identity must exist regardless: %v", err)
	}
}

func TestRegistration_LoginAfterCreateFails_SilentAbort(t *testing.T) {
	store := newStubIdentityStore()
	legacy := &stubLegacy{
		createdOK:   true,
		loginResult: &domain.LoginResult{Status: http.StatusUnauthorized},
	}
	svc := newTestRegistrationService(legacy, store)

	identity, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("post-commit failure must not fail registration: %v", err)
	}
	if identity.CRMCustomerID != "" || identity.CRMCustomerAddress != "" {
		t.Fatalf("no CRM attributes may be set when the mirror step fails")
	}
	if identity.FirstName != "Jane" {
		t.Fatalf("form names must be kept when the mirror step fails, got %s", identity.FirstName)
	}
}

func TestRegistration_DuplicateLocalIdentity(t *testing.T) {
	store := newStubIdentityStore()
	legacy := &stubLegacy{createdOK: false}
	svc := newTestRegistrationService(legacy, store)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput()); err != domain.ErrIdentityExists {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}
}
