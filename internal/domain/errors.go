package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidationText is the message of ErrValidation. Wrapped validation
// errors read "...: validation error: <detail>".
const ErrValidationText = "validation error"

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, CSV header mismatch).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New(ErrValidationText)

// ErrUnauthorized is returned when credentials or a session token are missing,
// wrong, expired, or revoked. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when a signed-in account is not on the admin
// allow-list. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
