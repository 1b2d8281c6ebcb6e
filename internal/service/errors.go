package service

import "errors"

// Authentication failures. All of these surface as a 401-class response;
// the reason string is the only thing that differs.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrTokenExpired       = errors.New("token has expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("inactive user")
)

// ErrHashing is the one fatal-class auth failure: the hashing primitive
// itself errored. It maps to a server-side fault, not a client error.
var ErrHashing = errors.New("password processing error")

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrMisconfigured = errors.New("auth config invalid")
)
