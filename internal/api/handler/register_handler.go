package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianbank/identity-gateway/internal/api/metrics"
	"github.com/meridianbank/identity-gateway/internal/core/domain"
	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

// RegisterHandler handles the registration form.
type RegisterHandler struct {
	registration ports.RegistrationService
}

func NewRegisterHandler(registration ports.RegistrationService) *RegisterHandler {
	return &RegisterHandler{registration: registration}
}

// Register handles POST /auth/register — creates the local identity and
// provisions the legacy CRM customer.
//
// @Summary      Register a new identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *RegisterHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	identity, err := h.registration.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailInUse), errors.Is(err, domain.ErrIdentityExists):
			metrics.RegistrationsTotal.WithLabelValues("email_in_use").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	if identity.CRMCustomerID != "" {
		metrics.IdentitiesProvisionedTotal.WithLabelValues("registration").Inc()
	}

	return c.JSON(http.StatusCreated, toIdentityResponse(identity))
}
