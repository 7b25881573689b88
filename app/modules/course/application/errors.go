package courseservice

import (
	"errors"

	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
)

var (
	ErrInvalidCourse  = errors.New("course needs a name and a valid location")
	ErrCourseNotFound = errors.New("course not found")
	ErrLayoutConflict = errors.New("layout was changed by someone else, reload and retry")

	// ErrInvalidEdit is re-exported so handlers only depend on this package.
	ErrInvalidEdit = coursedomain.ErrInvalidEdit
)
