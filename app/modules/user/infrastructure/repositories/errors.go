package userdb

import "errors"

var (
	// ErrNotFound is returned when a user is not found.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when an insert hits an existing username.
	ErrUsernameExists = errors.New("username already exists")
)
