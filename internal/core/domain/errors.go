package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailInUse = errors.New("email already in use")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrIdentityExists = errors.New("identity already exists")
var ErrInvalidTransition = errors.New("invalid flow transition")

// ErrLegacyUnavailable is the single signal the legacy client emits for every
// failure it absorbs: missing configuration, transport errors, and unparsable
// responses all collapse into it. Callers must never surface the distinction
// to end users; logs carry the real cause.
var ErrLegacyUnavailable = errors.New("legacy integration unavailable")
