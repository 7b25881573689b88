package courseservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
	coursedb "github.com/Black-And-White-Club/chainchaser/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/events"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "CourseService"

// CourseService implements the Service interface.
type CourseService struct {
	repo      coursedb.Repository
	rounds    RoundHistory
	publisher eventbus.Publisher
	mapConfig MapConfig
	logger    *slog.Logger
	deps      operation.Deps
	db        *bun.DB
}

// NewCourseService creates a new CourseService. rounds and publisher may be nil.
func NewCourseService(
	repo coursedb.Repository,
	rounds RoundHistory,
	publisher eventbus.Publisher,
	mapConfig MapConfig,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CourseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseService{
		repo:      repo,
		rounds:    rounds,
		publisher: publisher,
		mapConfig: mapConfig.withDefaults(),
		logger:    logger,
		deps: operation.Deps{
			Service: serviceName,
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
		},
		db: db,
	}
}

// SaveCourse creates a course or moves an existing one. The layout of an
// existing course is preserved.
func (s *CourseService) SaveCourse(ctx context.Context, name string, location *geo.Point) (*CourseView, error) {
	name = strings.TrimSpace(name)
	if name == "" || location == nil || !location.Valid() {
		return nil, ErrInvalidCourse
	}

	return operation.Unwrap(operation.Run(ctx, s.deps, "SaveCourse", name, func(ctx context.Context) (results.OperationResult[*CourseView, error], error) {
		return operation.InTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*CourseView, error], error) {
			course := &coursedb.Course{
				Name:   name,
				Lat:    location.Lat,
				Lon:    location.Lon,
				Layout: coursedomain.EmptyLayoutDocument(),
			}
			if err := s.repo.Upsert(ctx, db, course); err != nil {
				return results.OperationResult[*CourseView, error]{}, err
			}
			stored, err := s.repo.GetByName(ctx, db, name)
			if err != nil {
				return results.OperationResult[*CourseView, error]{}, fmt.Errorf("failed to reload course: %w", err)
			}
			return results.SuccessResult[*CourseView, error](s.toView(ctx, stored)), nil
		})
	}))
}

// ListCourses returns every saved course.
func (s *CourseService) ListCourses(ctx context.Context) ([]*CourseView, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "ListCourses", "all", func(ctx context.Context) (results.OperationResult[[]*CourseView, error], error) {
		courses, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]*CourseView, error]{}, err
		}
		views := make([]*CourseView, 0, len(courses))
		for _, c := range courses {
			views = append(views, s.toView(ctx, c))
		}
		return results.SuccessResult[[]*CourseView, error](views), nil
	}))
}

// GetCourse returns one saved course.
func (s *CourseService) GetCourse(ctx context.Context, name string) (*CourseView, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "GetCourse", name, func(ctx context.Context) (results.OperationResult[*CourseView, error], error) {
		course, err := s.repo.GetByName(ctx, nil, name)
		if err != nil {
			if errors.Is(err, coursedb.ErrNotFound) {
				return results.FailureResult[*CourseView, error](ErrCourseNotFound), nil
			}
			return results.OperationResult[*CourseView, error]{}, err
		}
		return results.SuccessResult[*CourseView, error](s.toView(ctx, course)), nil
	}))
}

// EditLayout applies a developer edit with a compare-and-swap on the
// course's layout version.
func (s *CourseService) EditLayout(ctx context.Context, req EditRequest) (*CourseView, error) {
	if err := req.Edit.Validate(); err != nil {
		return nil, err
	}

	view, err := operation.Unwrap(operation.Run(ctx, s.deps, "EditLayout", req.Course, func(ctx context.Context) (results.OperationResult[*CourseView, error], error) {
		return operation.InTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*CourseView, error], error) {
			return s.editLayoutLogic(ctx, db, req)
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.LayoutEditedTopic, events.LayoutEditedPayload{
		Course:        view.Name,
		Username:      req.Username,
		Hole:          req.Edit.Hole,
		Point:         string(req.Edit.Point),
		BasketID:      req.Edit.BasketID,
		LayoutVersion: view.LayoutVersion,
	})
	return view, nil
}

func (s *CourseService) editLayoutLogic(ctx context.Context, db bun.IDB, req EditRequest) (results.OperationResult[*CourseView, error], error) {
	course, err := s.repo.GetByName(ctx, db, req.Course)
	if err != nil {
		if errors.Is(err, coursedb.ErrNotFound) {
			return results.FailureResult[*CourseView, error](ErrCourseNotFound), nil
		}
		return results.OperationResult[*CourseView, error]{}, err
	}

	expected := course.LayoutVersion
	if req.ExpectedVersion != nil {
		if *req.ExpectedVersion != course.LayoutVersion {
			return results.FailureResult[*CourseView, error](ErrLayoutConflict), nil
		}
		expected = *req.ExpectedVersion
	}

	layout := s.decodeLayout(ctx, course)
	updated, err := coursedomain.ApplyEdit(layout, req.Edit)
	if err != nil {
		return results.FailureResult[*CourseView, error](err), nil
	}

	doc, err := coursedomain.EncodeLayout(updated)
	if err != nil {
		return results.OperationResult[*CourseView, error]{}, err
	}

	version, err := s.repo.UpdateLayout(ctx, db, course.Name, doc, expected)
	if err != nil {
		switch {
		case errors.Is(err, coursedb.ErrVersionMismatch):
			return results.FailureResult[*CourseView, error](ErrLayoutConflict), nil
		case errors.Is(err, coursedb.ErrNotFound):
			return results.FailureResult[*CourseView, error](ErrCourseNotFound), nil
		}
		return results.OperationResult[*CourseView, error]{}, err
	}

	course.Layout = doc
	course.LayoutVersion = version
	return results.SuccessResult[*CourseView, error](s.toView(ctx, course)), nil
}

// decodeLayout renders a malformed stored layout as empty.
func (s *CourseService) decodeLayout(ctx context.Context, course *coursedb.Course) coursedomain.Layout {
	layout, err := coursedomain.DecodeLayout(course.Layout)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored layout could not be decoded",
			attr.Course(course.Name),
			attr.Error(err),
		)
		return coursedomain.Layout{Holes: []coursedomain.Hole{}}
	}
	return layout
}

func (s *CourseService) toView(ctx context.Context, c *coursedb.Course) *CourseView {
	layout := s.decodeLayout(ctx, c)
	return &CourseView{
		Name:          c.Name,
		Location:      geo.Point{Lat: c.Lat, Lon: c.Lon},
		Layout:        layout,
		LayoutVersion: c.LayoutVersion,
		ScoredLines:   layout.ScoredLines(),
		UpdatedAt:     c.UpdatedAt,
	}
}

func (s *CourseService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
