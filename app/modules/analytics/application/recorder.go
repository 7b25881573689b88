package analyticsservice

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/events"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Subscriber registers event handlers.
type Subscriber interface {
	Subscribe(handlerName, topic string, fn eventbus.HandlerFunc)
}

// Recorder turns domain events into product metrics.
type Recorder struct {
	metrics *observability.DomainMetrics
	logger  *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(metrics *observability.DomainMetrics, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{metrics: metrics, logger: logger}
}

// Register subscribes the recorder to every domain event topic.
func (r *Recorder) Register(bus Subscriber) {
	bus.Subscribe("analytics.round_logged", events.RoundLoggedTopic, r.HandleRoundLogged)
	bus.Subscribe("analytics.review_submitted", events.ReviewSubmittedTopic, r.HandleReviewSubmitted)
	bus.Subscribe("analytics.layout_edited", events.LayoutEditedTopic, r.HandleLayoutEdited)
}

func (r *Recorder) HandleRoundLogged(ctx context.Context, msg *message.Message) error {
	payload, err := eventbus.Decode[events.RoundLoggedPayload](msg)
	if err != nil {
		return err
	}

	r.metrics.RoundsLogged.Inc()
	for _, d := range payload.Distances {
		r.metrics.ThrowDistance.Observe(d)
	}

	r.logger.InfoContext(ctx, "Round logged",
		attr.ExtractCorrelationID(ctx),
		attr.Username(payload.Username),
		attr.Course(payload.Course),
		attr.Int("throws", len(payload.Distances)),
	)
	return nil
}

func (r *Recorder) HandleReviewSubmitted(ctx context.Context, msg *message.Message) error {
	payload, err := eventbus.Decode[events.ReviewSubmittedPayload](msg)
	if err != nil {
		return err
	}

	r.metrics.ReviewsSubmitted.WithLabelValues(strconv.Itoa(payload.Rating)).Inc()
	if payload.Flagged {
		r.metrics.LostDiscFlags.Inc()
	}

	r.logger.InfoContext(ctx, "Review submitted",
		attr.ExtractCorrelationID(ctx),
		attr.Course(payload.Course),
		attr.Int("rating", payload.Rating),
		attr.Bool("flagged", payload.Flagged),
	)
	return nil
}

func (r *Recorder) HandleLayoutEdited(ctx context.Context, msg *message.Message) error {
	payload, err := eventbus.Decode[events.LayoutEditedPayload](msg)
	if err != nil {
		return err
	}

	r.metrics.LayoutEdits.WithLabelValues(payload.Point).Inc()

	r.logger.InfoContext(ctx, "Layout edited",
		attr.ExtractCorrelationID(ctx),
		attr.Username(payload.Username),
		attr.Course(payload.Course),
		attr.Int("hole", payload.Hole),
		attr.Int("layout_version", payload.LayoutVersion),
	)
	return nil
}
