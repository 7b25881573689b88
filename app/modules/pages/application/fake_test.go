package pagesservice

import (
	"context"
	"sync"

	analyticsservice "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/application"
	analyticsdomain "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/domain"
	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewservice "github.com/Black-And-White-Club/chainchaser/app/modules/review/application"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/chainchaser/app/modules/round/application"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// FakeModules implements every dependency the pages service reads from.
type FakeModules struct {
	mu    sync.Mutex
	trace []string

	ListCoursesFunc    func(ctx context.Context) ([]*courseservice.CourseView, error)
	BuildMapFunc       func(ctx context.Context, req courseservice.MapRequest) (*courseservice.MapView, error)
	NearbyCoursesFunc  func(ctx context.Context, p geo.Point, radius int) []placesdomain.Place
	SessionFunc        func(ctx context.Context, username string) *roundservice.SessionView
	ListReviewsFunc    func(ctx context.Context) ([]*reviewdb.Review, error)
	LostDiscHelperFunc func(ctx context.Context, location *geo.Point) *reviewservice.Suggestions
	SummaryFunc        func(ctx context.Context, username string) (*analyticsservice.Summary, error)
}

func (f *FakeModules) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeModules) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeModules) Dependencies() Dependencies {
	return Dependencies{Courses: f, Places: f, Sessions: f, Reviews: f, Analytics: f}
}

func (f *FakeModules) ListCourses(ctx context.Context) ([]*courseservice.CourseView, error) {
	f.record("ListCourses")
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx)
	}
	return []*courseservice.CourseView{}, nil
}

func (f *FakeModules) BuildMap(ctx context.Context, req courseservice.MapRequest) (*courseservice.MapView, error) {
	f.record("BuildMap")
	if f.BuildMapFunc != nil {
		return f.BuildMapFunc(ctx, req)
	}
	return &courseservice.MapView{Course: req.Course}, nil
}

func (f *FakeModules) Courses(ctx context.Context, p geo.Point, radius int) []placesdomain.Place {
	f.record("Courses")
	if f.NearbyCoursesFunc != nil {
		return f.NearbyCoursesFunc(ctx, p, radius)
	}
	return []placesdomain.Place{}
}

func (f *FakeModules) Session(ctx context.Context, username string) *roundservice.SessionView {
	f.record("Session")
	if f.SessionFunc != nil {
		return f.SessionFunc(ctx, username)
	}
	return &roundservice.SessionView{}
}

func (f *FakeModules) ListReviews(ctx context.Context) ([]*reviewdb.Review, error) {
	f.record("ListReviews")
	if f.ListReviewsFunc != nil {
		return f.ListReviewsFunc(ctx)
	}
	return []*reviewdb.Review{}, nil
}

func (f *FakeModules) LostDiscHelper(ctx context.Context, location *geo.Point) *reviewservice.Suggestions {
	f.record("LostDiscHelper")
	if f.LostDiscHelperFunc != nil {
		return f.LostDiscHelperFunc(ctx, location)
	}
	return &reviewservice.Suggestions{Retailers: []placesdomain.Place{}, Message: placesdomain.MsgRetailersNeedLocation}
}

func (f *FakeModules) Summary(ctx context.Context, username string) (*analyticsservice.Summary, error) {
	f.record("Summary")
	if f.SummaryFunc != nil {
		return f.SummaryFunc(ctx, username)
	}
	return &analyticsservice.Summary{Message: analyticsdomain.MsgNoRounds}, nil
}
