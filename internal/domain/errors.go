package domain

import "errors"

// Sentinel errors shared across services and handlers. Handlers translate
// these into HTTP status codes; anything else maps to a 500.
var (
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpstream           = errors.New("upstream failure")
)
