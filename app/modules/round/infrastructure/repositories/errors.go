package rounddb

import "errors"

// ErrNotFound is returned when no round matches.
var ErrNotFound = errors.New("round not found")
