package pagesservice

import (
	"context"

	analyticsservice "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/application"
	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	pagesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/pages/domain"
	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewservice "github.com/Black-And-White-Club/chainchaser/app/modules/review/application"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/chainchaser/app/modules/round/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// Service lists pages and builds the data each one renders.
type Service interface {
	Pages(ctx context.Context, role userdomain.Role) []PageInfo
	Build(ctx context.Context, page pagesdomain.Page, req Request) (any, error)
}

// Courses is the part of the course module pages read.
type Courses interface {
	ListCourses(ctx context.Context) ([]*courseservice.CourseView, error)
	BuildMap(ctx context.Context, req courseservice.MapRequest) (*courseservice.MapView, error)
}

// Places finds courses near a point.
type Places interface {
	Courses(ctx context.Context, p geo.Point, radius int) []placesdomain.Place
}

// Sessions exposes the caller's in-progress round.
type Sessions interface {
	Session(ctx context.Context, username string) *roundservice.SessionView
}

// Reviews is the part of the review module pages read.
type Reviews interface {
	ListReviews(ctx context.Context) ([]*reviewdb.Review, error)
	LostDiscHelper(ctx context.Context, location *geo.Point) *reviewservice.Suggestions
}

// Analytics summarizes the caller's throws.
type Analytics interface {
	Summary(ctx context.Context, username string) (*analyticsservice.Summary, error)
}

// Dependencies are the modules pages draw from.
type Dependencies struct {
	Courses   Courses
	Places    Places
	Sessions  Sessions
	Reviews   Reviews
	Analytics Analytics
}

// Request carries the caller and the optional page parameters.
type Request struct {
	Username string
	Role     userdomain.Role
	Location *geo.Point
	Radius   int
	Course   string
}

// PageInfo is a page definition plus whether the caller may use its
// developer controls.
type PageInfo struct {
	pagesdomain.Definition
	CanEdit bool `json:"can_edit"`
}

// MapPage lists nearby and saved courses and, when a course is selected,
// draws it.
type MapPage struct {
	Location      geo.Resolution              `json:"location"`
	Radius        int                         `json:"radius"`
	BroadenRadius int                         `json:"broaden_radius"`
	Nearby        []placesdomain.Place        `json:"nearby"`
	Saved         []*courseservice.CourseView `json:"saved"`
	Options       []string                    `json:"options"`
	Map           *courseservice.MapView      `json:"map,omitempty"`
	CanEdit       bool                        `json:"can_edit"`
	Message       string                      `json:"message,omitempty"`
}

// TrackRoundPage offers course names and the in-progress round.
type TrackRoundPage struct {
	Location *geo.Point                `json:"location,omitempty"`
	Options  []string                  `json:"options"`
	Session  *roundservice.SessionView `json:"session"`
	Message  string                    `json:"message,omitempty"`
}

// SubmitReviewPage is the review form.
type SubmitReviewPage struct {
	Courses   []string `json:"courses"`
	MinRating int      `json:"min_rating"`
	MaxRating int      `json:"max_rating"`
}

// ReviewsPage lists every review, newest first.
type ReviewsPage struct {
	Reviews []*reviewdb.Review `json:"reviews"`
}

// AnalyticsPage is the caller's throw summary.
type AnalyticsPage struct {
	Summary      *analyticsservice.Summary `json:"summary"`
	HistogramURL string                    `json:"histogram_url,omitempty"`
}

// LostDiscPage suggests replacement retailers.
type LostDiscPage struct {
	Suggestions *reviewservice.Suggestions `json:"suggestions"`
}

