package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meridianbank/identity-gateway/internal/core/domain"
)

// decodeLoginSubject extracts the legacy customer ID from the CRM login
// token. The CRM signs its tokens with a key the gateway does not hold, so
// only the payload is read; the token has already served as a bearer
// credential against the CRM itself.
func decodeLoginSubject(loginToken string) (string, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(loginToken, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("legacy login token carries no subject")
	}
	return claims.Subject, nil
}

// issueSessionToken creates the gateway's own HS256 session token for an
// authenticated identity.
func issueSessionToken(identity *domain.Identity, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
