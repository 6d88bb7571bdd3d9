package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "gateway_session"

// Session assigns each browser a session ID via cookie and injects it into
// the request context. The ID scopes the auth note of one authentication
// attempt; the cookie guarantees the validate and commit phases of an
// attempt share it without sharing it across browsers.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string
			if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookie,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set("session_id", sessionID)
			return next(c)
		}
	}
}
