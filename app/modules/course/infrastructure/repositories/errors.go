package coursedb

import "errors"

var (
	// ErrNotFound is returned when no course has the requested name.
	ErrNotFound = errors.New("course not found")

	// ErrVersionMismatch is returned when a layout write loses the
	// compare-and-swap on layout_version.
	ErrVersionMismatch = errors.New("layout version mismatch")
)
