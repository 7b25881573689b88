package userservice

import (
	"errors"
	"fmt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrMissingCredentials is returned when the username or password is blank.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)

	// ErrUsernameTaken is returned when signing up with an existing username.
	ErrUsernameTaken = errors.New("username taken")

	// ErrInvalidCredentials is returned when a login does not match an account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when promoting an unknown account.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a session token is missing or invalid.
	ErrInvalidToken = errors.New("invalid session token")
)
