package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianbank/identity-gateway/internal/core/ports"
)

// IdentityHandler serves the authenticated identity's own record.
type IdentityHandler struct {
	identities ports.IdentityStore
}

func NewIdentityHandler(identities ports.IdentityStore) *IdentityHandler {
	return &IdentityHandler{identities: identities}
}

// Me handles GET /identities/me — returns the caller's identity including
// the mirrored CRM attributes.
//
// @Summary      Fetch the authenticated identity
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /identities/me [get]
func (h *IdentityHandler) Me(c echo.Context) error {
	email, _ := c.Get("email").(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	identity, err := h.identities.FindByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIdentityResponse(identity))
}
