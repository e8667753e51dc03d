package service

import "errors"

// Service errors. Handlers map these onto HTTP statuses; anything else
// surfaces as a generic service failure.
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotConfirmed  = errors.New("email address not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("operation not permitted")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrNotFound           = errors.New("resource not found")
	ErrVehicleInUse       = errors.New("vehicle is referenced by an active listing")
	ErrInvalidListing     = errors.New("listing payload does not match its kind")
)
