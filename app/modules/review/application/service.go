package reviewservice

import (
	"context"
	"log/slog"
	"time"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewdomain "github.com/Black-And-White-Club/chainchaser/app/modules/review/domain"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/events"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"github.com/Black-And-White-Club/chainchaser/app/shared/xlsx"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ReviewService"

// ReviewService implements the Service interface.
type ReviewService struct {
	repo      reviewdb.Repository
	retailers RetailerFinder
	publisher eventbus.Publisher
	logger    *slog.Logger
	deps      operation.Deps
	db        *bun.DB
}

// NewReviewService creates a new ReviewService. retailers and publisher may
// be nil.
func NewReviewService(
	repo reviewdb.Repository,
	retailers RetailerFinder,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewService{
		repo:      repo,
		retailers: retailers,
		publisher: publisher,
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

// Submit validates, flags and stores a review. A flagged review comes back
// with retailer suggestions.
func (s *ReviewService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	course, comment := reviewdomain.Normalize(req.Course, req.Comment)
	if course == "" {
		return nil, ErrMissingCourse
	}
	if err := reviewdomain.ValidateRating(req.Rating); err != nil {
		return nil, err
	}

	review := &reviewdb.Review{
		Username:  req.Username,
		Course:    course,
		Rating:    req.Rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if flag, ok := reviewdomain.FlagLostDisc(comment); ok {
		review.Flagged = &flag
	}

	stored, err := operation.Unwrap(operation.Run(ctx, s.deps, "Submit", course, func(ctx context.Context) (results.OperationResult[*reviewdb.Review, error], error) {
		if err := s.repo.Create(ctx, nil, review); err != nil {
			return results.OperationResult[*reviewdb.Review, error]{}, err
		}
		return results.SuccessResult[*reviewdb.Review, error](review), nil
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ReviewSubmittedTopic, events.ReviewSubmittedPayload{
		ReviewID: stored.ID,
		Username: stored.Username,
		Course:   stored.Course,
		Rating:   stored.Rating,
		Flagged:  stored.Flagged != nil,
	})

	result := &SubmitResult{Review: stored}
	if stored.Flagged != nil {
		result.Suggestions = s.LostDiscHelper(ctx, req.Location)
	}
	return result, nil
}

// ListReviews returns every review, newest first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]*reviewdb.Review, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "ListReviews", "all", func(ctx context.Context) (results.OperationResult[[]*reviewdb.Review, error], error) {
		reviews, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]*reviewdb.Review, error]{}, err
		}
		return results.SuccessResult[[]*reviewdb.Review, error](reviews), nil
	}))
}

// ExportReviews renders every review as a workbook.
func (s *ReviewService) ExportReviews(ctx context.Context) ([]byte, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "ExportReviews", "all", func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		reviews, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}

		sheet := xlsx.Sheet{
			Name:   "Reviews",
			Header: []string{"ID", "Username", "Course", "Rating", "Comment", "Flagged", "Created"},
		}
		for _, r := range reviews {
			flagged := ""
			if r.Flagged != nil {
				flagged = *r.Flagged
			}
			sheet.Rows = append(sheet.Rows, []any{
				r.ID, r.Username, r.Course, r.Rating, r.Comment, flagged,
				r.CreatedAt.UTC().Format(time.RFC3339),
			})
		}

		data, err := xlsx.Write(sheet)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	}))
}

// LostDiscHelper suggests retailers near location. Without a usable reading
// it asks for one instead of searching.
func (s *ReviewService) LostDiscHelper(ctx context.Context, location *geo.Point) *Suggestions {
	if !geo.Usable(location) {
		return &Suggestions{
			Retailers: []placesdomain.Place{},
			Message:   placesdomain.MsgRetailersNeedLocation,
		}
	}

	retailers := []placesdomain.Place{}
	if s.retailers != nil {
		retailers = s.retailers.Retailers(ctx, *location)
	}
	s.logger.DebugContext(ctx, "Retailer suggestions",
		attr.String("location", location.String()),
		attr.Int("count", len(retailers)),
	)
	return &Suggestions{
		Retailers: retailers,
		Message:   placesdomain.RetailerMessage(retailers),
	}
}

func (s *ReviewService) publish(ctx context.Context, topic string, payload any) {
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
