package reviewservice

import reviewdomain "github.com/Black-And-White-Club/chainchaser/app/modules/review/domain"

var (
	ErrInvalidRating = reviewdomain.ErrInvalidRating
	ErrMissingCourse = reviewdomain.ErrMissingCourse
)
