package reviewhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	reviewservice "github.com/Black-And-White-Club/chainchaser/app/modules/review/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/xlsx"
	"go.opentelemetry.io/otel/trace"
)

// MsgReviewShared confirms a stored review.
const MsgReviewShared = "Review shared!"

// ReviewHandlers implements the Handlers interface.
type ReviewHandlers struct {
	service reviewservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewReviewHandlers creates a new ReviewHandlers instance.
func NewReviewHandlers(service reviewservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &ReviewHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type submitReviewRequest struct {
	Course   string     `json:"course"`
	Rating   int        `json:"rating"`
	Comment  string     `json:"comment"`
	Location *geo.Point `json:"location"`
}

func (h *ReviewHandlers) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReviewHandlers.HandleListReviews")
	defer span.End()

	reviews, err := h.service.ListReviews(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *ReviewHandlers) HandleSubmitReview(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReviewHandlers.HandleSubmitReview")
	defer span.End()

	var req submitReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	submit := reviewservice.SubmitRequest{
		Course:   req.Course,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Location: req.Location,
	}
	if claims, ok := userdomain.ClaimsFromContext(ctx); ok {
		submit.Username = claims.Username
	}

	res, err := h.service.Submit(ctx, submit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message":     MsgReviewShared,
		"review":      res.Review,
		"suggestions": res.Suggestions,
	})
}

func (h *ReviewHandlers) HandleExportReviews(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReviewHandlers.HandleExportReviews")
	defer span.End()

	data, err := h.service.ExportReviews(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteFile(w, xlsx.ContentType, "reviews.xlsx", data)
}

// HandleLostDisc suggests replacement retailers near lat/lon.
func (h *ReviewHandlers) HandleLostDisc(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ReviewHandlers.HandleLostDisc")
	defer span.End()

	httpx.WriteJSON(w, http.StatusOK, h.service.LostDiscHelper(ctx, httpx.QueryPoint(r, "lat", "lon")))
}

func (h *ReviewHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviewservice.ErrInvalidRating):
		httpx.WriteError(w, http.StatusBadRequest, "Rating must be between 1 and 5.")
	case errors.Is(err, reviewservice.ErrMissingCourse):
		httpx.WriteError(w, http.StatusBadRequest, "Enter a course name.")
	default:
		h.logger.ErrorContext(r.Context(), "Review request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
