package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianbank/identity-gateway/internal/api/metrics"
	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

// LoginHandler handles the migration login form.
type LoginHandler struct {
	migration ports.MigrationService
}

func NewLoginHandler(migration ports.MigrationService) *LoginHandler {
	return &LoginHandler{migration: migration}
}

// Login handles POST /auth/login — runs the credential-migration flow.
//
// @Summary      Authenticate, migrating the legacy CRM customer if needed
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login form"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *LoginHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sessionID, _ := c.Get("session_id").(string)
	result, err := h.migration.Authenticate(c.Request().Context(), ports.AuthenticateInput{
		SessionID: sessionID,
		Username:  req.Username,
		Password:  req.Password,
		Cancel:    req.Cancel,
	})
	if err != nil {
		metrics.MigrationLoginsTotal.WithLabelValues("failed").Inc()
		return err
	}

	if result.State == domain.FlowCancelled {
		metrics.MigrationLoginsTotal.WithLabelValues("cancelled").Inc()
		return c.JSON(http.StatusOK, loginResponse{Status: string(result.State)})
	}

	metrics.MigrationLoginsTotal.WithLabelValues("succeeded").Inc()
	if result.Migrated {
		metrics.IdentitiesProvisionedTotal.WithLabelValues("login").Inc()
	}

	return c.JSON(http.StatusOK, loginResponse{
		Status:   string(result.State),
		Token:    result.Token,
		Identity: toIdentityResponse(result.Identity),
	})
}

func toIdentityResponse(identity *domain.Identity) *identityResponse {
	if identity == nil {
		return nil
	}
	return &identityResponse{
		ID:                 identity.ID,
		Email:              identity.Email,
		FirstName:          identity.FirstName,
		LastName:           identity.LastName,
		CRMCustomerID:      identity.CRMCustomerID,
		CRMCustomerAddress: identity.CRMCustomerAddress,
		CreatedAt:          identity.CreatedAt,
		UpdatedAt:          identity.UpdatedAt,
	}
}
