package courseservice

import (
	"context"
	"time"

	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// Service defines the contract for course and layout operations.
type Service interface {
	SaveCourse(ctx context.Context, name string, location *geo.Point) (*CourseView, error)
	ListCourses(ctx context.Context) ([]*CourseView, error)
	GetCourse(ctx context.Context, name string) (*CourseView, error)
	EditLayout(ctx context.Context, req EditRequest) (*CourseView, error)
	BuildMap(ctx context.Context, req MapRequest) (*MapView, error)
}

// RoundHistory supplies the latest stored throw log of a user on a course.
type RoundHistory interface {
	LatestThrowLog(ctx context.Context, username, course string) (string, bool, error)
}

// CourseView is a course with its decoded layout.
type CourseView struct {
	Name          string                    `json:"name"`
	Location      geo.Point                 `json:"location"`
	Layout        coursedomain.Layout       `json:"layout"`
	LayoutVersion int                       `json:"layout_version"`
	ScoredLines   []coursedomain.ScoredLine `json:"scored_lines"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// EditRequest is a developer layout edit. A nil ExpectedVersion uses the
// version read inside the edit transaction.
type EditRequest struct {
	Course          string
	Username        string
	Edit            coursedomain.Edit
	ExpectedVersion *int
}

// MapRequest selects the course to draw. Fallback places an unsaved course
// (for example a nearby search result) on the map with an empty layout.
type MapRequest struct {
	Course   string
	Username string
	Current  *geo.Point
	Fallback *geo.Point
}
