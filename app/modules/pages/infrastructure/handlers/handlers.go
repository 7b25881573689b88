package pageshandlers

import (
	"errors"
	"log/slog"
	"net/http"

	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	pagesservice "github.com/Black-And-White-Club/chainchaser/app/modules/pages/application"
	pagesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/pages/domain"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// PagesHandlers implements the Handlers interface.
type PagesHandlers struct {
	service pagesservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewPagesHandlers creates a new PagesHandlers instance.
func NewPagesHandlers(service pagesservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &PagesHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *PagesHandlers) HandleListPages(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PagesHandlers.HandleListPages")
	defer span.End()

	var role userdomain.Role
	if claims, ok := userdomain.ClaimsFromContext(ctx); ok {
		role = claims.Role
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"pages": h.service.Pages(ctx, role)})
}

// HandleGetPage builds one page. Optional query parameters: lat, lon,
// radius (meters) and course.
func (h *PagesHandlers) HandleGetPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PagesHandlers.HandleGetPage")
	defer span.End()

	page, ok := pagesdomain.Parse(chi.URLParam(r, "page"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "unknown page")
		return
	}

	req := pagesservice.Request{
		Location: httpx.QueryPoint(r, "lat", "lon"),
		Radius:   httpx.QueryInt(r, "radius", 0),
		Course:   r.URL.Query().Get("course"),
	}
	if claims, ok := userdomain.ClaimsFromContext(ctx); ok {
		req.Username = claims.Username
		req.Role = claims.Role
	}

	data, err := h.service.Build(ctx, page, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"page": page, "data": data})
}

func (h *PagesHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pagesservice.ErrUnknownPage):
		httpx.WriteError(w, http.StatusNotFound, "unknown page")
	case errors.Is(err, courseservice.ErrCourseNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Page request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
