package roundhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	roundservice "github.com/Black-And-White-Club/chainchaser/app/modules/round/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/xlsx"
	"go.opentelemetry.io/otel/trace"
)

// RoundHandlers implements the Handlers interface.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRoundHandlers creates a new RoundHandlers instance.
func NewRoundHandlers(service roundservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &RoundHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type locationRequest struct {
	Location *geo.Point `json:"location"`
}

type finishRequest struct {
	Course string `json:"course"`
	Date   string `json:"date"`
}

func (h *RoundHandlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleGetSession")
	defer span.End()

	httpx.WriteJSON(w, http.StatusOK, h.service.Session(ctx, username(r)))
}

func (h *RoundHandlers) HandleStartHole(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleStartHole")
	defer span.End()

	httpx.WriteJSON(w, http.StatusOK, h.service.StartHole(ctx, username(r)))
}

// HandleMarkStart answers 200 with a message when the location is unusable;
// the session is unchanged.
func (h *RoundHandlers) HandleMarkStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleMarkStart")
	defer span.End()

	var req locationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.MarkStart(ctx, username(r), req.Location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *RoundHandlers) HandleMarkLanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleMarkLanding")
	defer span.End()

	var req locationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.service.MarkLanding(ctx, username(r), req.Location))
}

func (h *RoundHandlers) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleFinish")
	defer span.End()

	var req finishRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	round, err := h.service.Finish(ctx, username(r), req.Course, req.Date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": roundservice.MsgRoundLogged,
		"round":   round,
	})
}

func (h *RoundHandlers) HandleListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleListRounds")
	defer span.End()

	rounds, err := h.service.ListRounds(ctx, username(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"rounds": rounds})
}

func (h *RoundHandlers) HandleExportRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RoundHandlers.HandleExportRounds")
	defer span.End()

	data, err := h.service.ExportRounds(ctx, username(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteFile(w, xlsx.ContentType, "rounds.xlsx", data)
}

func (h *RoundHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roundservice.ErrMissingCourse):
		httpx.WriteError(w, http.StatusBadRequest, "Enter a course name.")
	case errors.Is(err, roundservice.ErrInvalidDate):
		httpx.WriteError(w, http.StatusBadRequest, "Enter a date like 2026-03-14, today or last saturday.")
	case errors.Is(err, roundservice.ErrNoHoleOpen):
		httpx.WriteError(w, http.StatusConflict, "Start a hole first.")
	default:
		h.logger.ErrorContext(r.Context(), "Round request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func username(r *http.Request) string {
	if claims, ok := userdomain.ClaimsFromContext(r.Context()); ok {
		return claims.Username
	}
	return ""
}
