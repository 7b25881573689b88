package userjwt

import "errors"

// Session token failures. Handlers treat all of them as unauthenticated.
var (
	ErrInvalidToken     = errors.New("session token is malformed")
	ErrExpiredToken     = errors.New("session token expired")
	ErrInvalidSignature = errors.New("session token signature mismatch")
)
