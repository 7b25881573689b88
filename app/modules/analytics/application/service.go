package analyticsservice

import (
	"context"
	"fmt"
	"log/slog"

	analyticsdomain "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/domain"
	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "AnalyticsService"

// AnalyticsService implements the Service interface.
type AnalyticsService struct {
	source  ThrowLogSource
	palette ChartPalette
	logger  *slog.Logger
	deps    operation.Deps
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	source ThrowLogSource,
	palette ChartPalette,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		source:  source,
		palette: palette,
		logger:  logger,
		deps: operation.Deps{
			Service: serviceName,
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
		},
	}
}

// Summary loads the user's rounds and summarizes every decodable throw. A
// round whose throw log cannot be decoded is skipped entirely.
func (s *AnalyticsService) Summary(ctx context.Context, username string) (*Summary, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "Summary", username, func(ctx context.Context) (results.OperationResult[*Summary, error], error) {
		logs, err := s.source.ThrowLogs(ctx, username)
		if err != nil {
			return results.OperationResult[*Summary, error]{}, fmt.Errorf("failed to load throw logs: %w", err)
		}
		return results.SuccessResult[*Summary, error](s.summarize(ctx, username, logs)), nil
	}))
}

func (s *AnalyticsService) summarize(ctx context.Context, username string, logs []string) *Summary {
	summary := &Summary{Rounds: len(logs)}

	var distances []float64
	for _, throwLog := range logs {
		holes, err := rounddomain.DecodeThrowLog(throwLog)
		if err != nil {
			summary.SkippedRounds++
			s.logger.WarnContext(ctx, "Skipping round with malformed throw log",
				attr.Username(username),
				attr.Error(err),
			)
			continue
		}
		distances = append(distances, holes.Distances()...)
	}

	summary.Stats = analyticsdomain.Compute(distances)
	switch {
	case summary.Rounds == 0:
		summary.Message = analyticsdomain.MsgNoRounds
	case summary.Stats.Count == 0:
		summary.Message = analyticsdomain.MsgNoThrows
	default:
		advice := analyticsdomain.AdviceFor(summary.Stats.Mean)
		summary.Advice = &advice
		summary.Message = fmt.Sprintf("Average throw distance: %.0f ft", summary.Stats.Mean)
	}
	return summary
}

// HistogramPNG renders the user's throw-distance histogram.
func (s *AnalyticsService) HistogramPNG(ctx context.Context, username string) ([]byte, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "HistogramPNG", username, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		logs, err := s.source.ThrowLogs(ctx, username)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to load throw logs: %w", err)
		}
		summary := s.summarize(ctx, username, logs)

		png, err := RenderHistogram(summary.Stats, s.palette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render histogram: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	}))
}
