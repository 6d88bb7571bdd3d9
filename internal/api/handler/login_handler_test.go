package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

type stubMigrationService struct {
	authenticateFn func(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error)
}

func (s *stubMigrationService) Authenticate(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
	return s.authenticateFn(ctx, input)
}

func TestLoginHandler_Success(t *testing.T) {
	e := echo.New()
	stub := &stubMigrationService{
		authenticateFn: func(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
			if input.Username != "john@example.com" || input.Password != "secret" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.SessionID != "sess-1" {
				t.Fatalf("expected session id from context, got %q", input.SessionID)
			}
			return &ports.AuthenticateResult{
				State:    domain.FlowSucceeded,
				Identity: &domain.Identity{ID: "id-1", Email: input.Username, FirstName: "John", LastName: "Doe"},
				Token:    "session-jwt",
			}, nil
		},
	}
	handler := NewLoginHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"john@example.com","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_id", "sess-1")

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != string(domain.FlowSucceeded) {
		t.Fatalf("unexpected status: %v", resp["status"])
	}
	if resp["token"] != "session-jwt" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	identity, ok := resp["identity"].(map[string]any)
	if !ok || identity["email"] != "john@example.com" {
		t.Fatalf("unexpected identity payload: %+v", resp["identity"])
	}
}

func TestLoginHandler_Cancelled(t *testing.T) {
	e := echo.New()
	stub := &stubMigrationService{
		authenticateFn: func(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
			if !input.Cancel {
				t.Fatalf("expected cancel flag to be bound")
			}
			return &ports.AuthenticateResult{State: domain.FlowCancelled}, nil
		},
	}
	handler := NewLoginHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"cancel":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != string(domain.FlowCancelled) {
		t.Fatalf("unexpected status: %v", resp["status"])
	}
	if _, hasToken := resp["token"]; hasToken {
		t.Fatalf("cancelled flow must not carry a token")
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubMigrationService{
		authenticateFn: func(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewLoginHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"john@example.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// The handler propagates the sentinel; the central error handler maps it.
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginHandler_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubMigrationService{
		authenticateFn: func(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewLoginHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestLoginHandler_FormEncoded(t *testing.T) {
	e := echo.New()
	stub := &stubMigrationService{
		authenticateFn: func(ctx context.Context, input ports.AuthenticateInput) (*ports.AuthenticateResult, error) {
			if input.Username != "john@example.com" || input.Password != "secret" {
				t.Fatalf("form values not bound: %+v", input)
			}
			return &ports.AuthenticateResult{State: domain.FlowSucceeded}, nil
		},
	}
	handler := NewLoginHandler(stub)

	body := strings.NewReader("username=john%40example.com&password=secret")
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
