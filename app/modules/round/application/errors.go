package roundservice

import (
	"errors"

	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
)

var (
	ErrMissingCourse = errors.New("select a course before logging the round")

	ErrNoHoleOpen  = rounddomain.ErrNoHoleOpen
	ErrInvalidDate = rounddomain.ErrInvalidDate
)
