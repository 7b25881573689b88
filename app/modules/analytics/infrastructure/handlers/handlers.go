package analyticshandlers

import (
	"log/slog"
	"net/http"

	analyticsservice "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"go.opentelemetry.io/otel/trace"
)

// AnalyticsHandlers implements the Handlers interface.
type AnalyticsHandlers struct {
	service analyticsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAnalyticsHandlers creates a new AnalyticsHandlers instance.
func NewAnalyticsHandlers(service analyticsservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &AnalyticsHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *AnalyticsHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AnalyticsHandlers.HandleSummary")
	defer span.End()

	summary, err := h.service.Summary(ctx, username(r))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandlers) HandleHistogram(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AnalyticsHandlers.HandleHistogram")
	defer span.End()

	data, err := h.service.HistogramPNG(ctx, username(r))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httpx.WriteFile(w, "image/png", "", data)
}

func (h *AnalyticsHandlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Analytics request failed",
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}

func username(r *http.Request) string {
	if claims, ok := userdomain.ClaimsFromContext(r.Context()); ok {
		return claims.Username
	}
	return ""
}
