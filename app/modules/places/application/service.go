package placesservice

import (
	"context"
	"log/slog"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Request outcomes recorded on the places counter.
const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeSkipped = "skipped"
)

// PlacesService implements the Service interface.
type PlacesService struct {
	searcher       Searcher
	courseRadius   int
	retailerRadius int
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        *observability.DomainMetrics
}

// Radii are the default search radii in metres. Zero values use the
// package defaults.
type Radii struct {
	Course   int
	Retailer int
}

// NewPlacesService creates a new PlacesService. metrics may be nil.
func NewPlacesService(searcher Searcher, radii Radii, logger *slog.Logger, tracer trace.Tracer, metrics *observability.DomainMetrics) *PlacesService {
	if logger == nil {
		logger = slog.Default()
	}
	if radii.Course <= 0 {
		radii.Course = placesdomain.CourseRadius
	}
	if radii.Retailer <= 0 {
		radii.Retailer = placesdomain.RetailerRadius
	}
	return &PlacesService{
		searcher:       searcher,
		courseRadius:   radii.Course,
		retailerRadius: radii.Retailer,
		logger:         logger,
		tracer:         tracer,
		metrics:        metrics,
	}
}

// Nearby queries each keyword in turn and merges the results. A keyword
// whose query fails is dropped.
func (s *PlacesService) Nearby(ctx context.Context, p geo.Point, radius int, keywords []string) []placesdomain.Place {
	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "PlacesService.Nearby", trace.WithAttributes(
			attribute.Int("radius", radius),
			attribute.Int("keywords", len(keywords)),
		))
		defer span.End()
	}

	if s.searcher == nil || !s.searcher.Configured() {
		s.record(outcomeSkipped)
		s.logger.DebugContext(ctx, "Places search skipped, no API key configured")
		return []placesdomain.Place{}
	}

	perKeyword := make([][]placesdomain.Place, 0, len(keywords))
	for _, keyword := range keywords {
		results, err := s.searcher.Search(ctx, p, radius, keyword)
		if err != nil {
			s.record(outcomeError)
			s.logger.WarnContext(ctx, "Places search failed",
				attr.String("keyword", keyword),
				attr.Int("radius", radius),
				attr.Error(err),
			)
			continue
		}
		s.record(outcomeOK)
		perKeyword = append(perKeyword, results)
	}

	places := placesdomain.Merge(perKeyword)
	s.logger.DebugContext(ctx, "Places search completed",
		attr.Int("radius", radius),
		attr.Int("count", len(places)),
	)
	return places
}

// Courses finds courses within radius metres; radius <= 0 uses the
// configured course radius.
func (s *PlacesService) Courses(ctx context.Context, p geo.Point, radius int) []placesdomain.Place {
	if radius <= 0 {
		radius = s.courseRadius
	}
	return s.Nearby(ctx, p, radius, placesdomain.CourseKeywords)
}

// Retailers finds disc golf shops near p.
func (s *PlacesService) Retailers(ctx context.Context, p geo.Point) []placesdomain.Place {
	return s.Nearby(ctx, p, s.retailerRadius, placesdomain.RetailerKeywords)
}

func (s *PlacesService) record(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.PlacesRequests.WithLabelValues(outcome).Inc()
}
