package pagesservice

import (
	"context"
	"errors"
	"log/slog"

	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	pagesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/pages/domain"
	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewdomain "github.com/Black-And-White-Club/chainchaser/app/modules/review/domain"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "PagesService"

// HistogramPath is where the analytics page loads its chart from.
const HistogramPath = "/api/analytics/histogram.png"

type builder func(ctx context.Context, req Request) (results.OperationResult[any, error], error)

// PagesService implements the Service interface.
type PagesService struct {
	deps          Dependencies
	locator       geo.Locator
	defaultRadius int
	builders      map[pagesdomain.Page]builder
	logger        *slog.Logger
	ops           operation.Deps
}

// NewPagesService creates a new PagesService. defaultRadius is used when a
// request carries none.
func NewPagesService(
	deps Dependencies,
	locator geo.Locator,
	defaultRadius int,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *PagesService {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultRadius <= 0 {
		defaultRadius = placesdomain.CourseRadius
	}
	s := &PagesService{
		deps:          deps,
		locator:       locator,
		defaultRadius: defaultRadius,
		logger:        logger,
		ops: operation.Deps{
			Service: serviceName,
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
		},
	}
	s.builders = map[pagesdomain.Page]builder{
		pagesdomain.PageMap:          s.buildMap,
		pagesdomain.PageSubmitReview: s.buildSubmitReview,
		pagesdomain.PageReviews:      s.buildReviews,
		pagesdomain.PageTrackRound:   s.buildTrackRound,
		pagesdomain.PageAnalytics:    s.buildAnalytics,
		pagesdomain.PageLostDisc:     s.buildLostDisc,
	}
	return s
}

// Pages lists every page for a caller with role.
func (s *PagesService) Pages(ctx context.Context, role userdomain.Role) []PageInfo {
	defs := pagesdomain.Definitions()
	out := make([]PageInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, PageInfo{
			Definition: d,
			CanEdit:    d.Requires.Developer && role.CanEditLayouts(),
		})
	}
	return out
}

// Build assembles the data page renders for req.
func (s *PagesService) Build(ctx context.Context, page pagesdomain.Page, req Request) (any, error) {
	build, ok := s.builders[page]
	if !ok {
		return nil, ErrUnknownPage
	}
	return operation.Unwrap(operation.Run(ctx, s.ops, "Build", string(page), func(ctx context.Context) (results.OperationResult[any, error], error) {
		return build(ctx, req)
	}))
}

func (s *PagesService) radius(req Request) int {
	if req.Radius > 0 {
		return req.Radius
	}
	return s.defaultRadius
}

func (s *PagesService) buildMap(ctx context.Context, req Request) (results.OperationResult[any, error], error) {
	loc := s.locator.Resolve(req.Location)
	radius := s.radius(req)

	saved, err := s.deps.Courses.ListCourses(ctx)
	if err != nil {
		return results.OperationResult[any, error]{}, err
	}
	nearby := s.deps.Places.Courses(ctx, loc.Point, radius)

	page := &MapPage{
		Location:      loc,
		Radius:        radius,
		BroadenRadius: pagesdomain.BroadenedRadius(radius),
		Nearby:        nearby,
		Saved:         saved,
		Options:       pagesdomain.CourseOptions(placesdomain.Names(nearby), courseNames(saved)),
		CanEdit:       req.Role.CanEditLayouts(),
	}
	if len(nearby) == 0 {
		page.Message = pagesdomain.NoCoursesMessage(radius)
	}

	if req.Course != "" && req.Course != pagesdomain.CustomCourse {
		mapReq := courseservice.MapRequest{
			Course:   req.Course,
			Username: req.Username,
		}
		if geo.Usable(req.Location) {
			mapReq.Current = req.Location
		}
		for _, p := range nearby {
			if p.Name == req.Course {
				pt := p.Point()
				mapReq.Fallback = &pt
				break
			}
		}
		view, err := s.deps.Courses.BuildMap(ctx, mapReq)
		if err != nil {
			if errors.Is(err, courseservice.ErrCourseNotFound) {
				return results.FailureResult[any, error](err), nil
			}
			return results.OperationResult[any, error]{}, err
		}
		page.Map = view
	}

	return results.SuccessResult[any, error](page), nil
}

func (s *PagesService) buildTrackRound(ctx context.Context, req Request) (results.OperationResult[any, error], error) {
	saved, err := s.deps.Courses.ListCourses(ctx)
	if err != nil {
		return results.OperationResult[any, error]{}, err
	}

	page := &TrackRoundPage{Session: s.deps.Sessions.Session(ctx, req.Username)}
	if geo.Usable(req.Location) {
		nearby := s.deps.Places.Courses(ctx, *req.Location, s.radius(req))
		page.Location = req.Location
		page.Options = pagesdomain.CourseOptions(courseNames(saved), placesdomain.Names(nearby))
	} else {
		page.Options = pagesdomain.CourseOptions(courseNames(saved))
		page.Message = pagesdomain.MsgEnableGPS
	}
	return results.SuccessResult[any, error](page), nil
}

func (s *PagesService) buildSubmitReview(ctx context.Context, req Request) (results.OperationResult[any, error], error) {
	saved, err := s.deps.Courses.ListCourses(ctx)
	if err != nil {
		return results.OperationResult[any, error]{}, err
	}
	return results.SuccessResult[any, error](&SubmitReviewPage{
		Courses:   courseNames(saved),
		MinRating: reviewdomain.MinRating,
		MaxRating: reviewdomain.MaxRating,
	}), nil
}

func (s *PagesService) buildReviews(ctx context.Context, req Request) (results.OperationResult[any, error], error) {
	reviews, err := s.deps.Reviews.ListReviews(ctx)
	if err != nil {
		return results.OperationResult[any, error]{}, err
	}
	return results.SuccessResult[any, error](&ReviewsPage{Reviews: reviews}), nil
}

func (s *PagesService) buildAnalytics(ctx context.Context, req Request) (results.OperationResult[any, error], error) {
	summary, err := s.deps.Analytics.Summary(ctx, req.Username)
	if err != nil {
		return results.OperationResult[any, error]{}, err
	}
	page := &AnalyticsPage{Summary: summary}
	if summary.Advice != nil {
		page.HistogramURL = HistogramPath
	}
	return results.SuccessResult[any, error](page), nil
}

func (s *PagesService) buildLostDisc(ctx context.Context, req Request) (results.OperationResult[any, error], error) {
	s.logger.DebugContext(ctx, "Building lost disc page", attr.Username(req.Username), attr.Bool("has_location", geo.Usable(req.Location)))
	return results.SuccessResult[any, error](&LostDiscPage{
		Suggestions: s.deps.Reviews.LostDiscHelper(ctx, req.Location),
	}), nil
}

func courseNames(courses []*courseservice.CourseView) []string {
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	return names
}
