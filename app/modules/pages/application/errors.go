package pagesservice

import "errors"

// ErrUnknownPage is returned for a page outside the fixed set.
var ErrUnknownPage = errors.New("unknown page")
