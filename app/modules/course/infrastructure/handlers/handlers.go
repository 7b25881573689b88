package coursehandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// CourseHandlers implements the Handlers interface.
type CourseHandlers struct {
	service courseservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCourseHandlers creates a new CourseHandlers instance.
func NewCourseHandlers(service courseservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &CourseHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type saveCourseRequest struct {
	Name     string     `json:"name"`
	Location *geo.Point `json:"location"`
}

type editLayoutRequest struct {
	Hole            int                    `json:"hole"`
	Point           coursedomain.PointKind `json:"point"`
	BasketID        int                    `json:"basket_id"`
	Active          bool                   `json:"active"`
	Location        *geo.Point             `json:"location"`
	ExpectedVersion *int                   `json:"expected_version"`
}

func (h *CourseHandlers) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleListCourses")
	defer span.End()

	courses, err := h.service.ListCourses(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

func (h *CourseHandlers) HandleSaveCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleSaveCourse")
	defer span.End()

	var req saveCourseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, err := h.service.SaveCourse(ctx, req.Name, req.Location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Course %s saved!", course.Name),
		"course":  course,
	})
}

func (h *CourseHandlers) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleGetCourse")
	defer span.End()

	course, err := h.service.GetCourse(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, course)
}

// HandleMap draws a course. lat/lon is the caller's position; course_lat and
// course_lon place a course that has not been saved yet.
func (h *CourseHandlers) HandleMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleMap")
	defer span.End()

	req := courseservice.MapRequest{
		Course:   chi.URLParam(r, "name"),
		Current:  httpx.QueryPoint(r, "lat", "lon"),
		Fallback: httpx.QueryPoint(r, "course_lat", "course_lon"),
	}
	if claims, ok := userdomain.ClaimsFromContext(ctx); ok {
		req.Username = claims.Username
	}

	view, err := h.service.BuildMap(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *CourseHandlers) HandleEditLayout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CourseHandlers.HandleEditLayout")
	defer span.End()

	var req editLayoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !geo.Usable(req.Location) {
		httpx.WriteError(w, http.StatusBadRequest, "Failed to get GPS location. Enable location services on your device.")
		return
	}

	edit := courseservice.EditRequest{
		Course: chi.URLParam(r, "name"),
		Edit: coursedomain.Edit{
			Hole:     req.Hole,
			Point:    req.Point,
			BasketID: req.BasketID,
			Active:   req.Active,
			Lat:      req.Location.Lat,
			Lon:      req.Location.Lon,
		},
		ExpectedVersion: req.ExpectedVersion,
	}
	if claims, ok := userdomain.ClaimsFromContext(ctx); ok {
		edit.Username = claims.Username
	}

	course, err := h.service.EditLayout(ctx, edit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s for Hole %d added/updated!", pointLabel(req.Point), req.Hole),
		"course":  course,
	})
}

func (h *CourseHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, courseservice.ErrInvalidCourse), errors.Is(err, courseservice.ErrInvalidEdit):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, courseservice.ErrCourseNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, courseservice.ErrLayoutConflict):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Course request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func pointLabel(p coursedomain.PointKind) string {
	if p == coursedomain.PointTee {
		return "Tee Pad"
	}
	return "Basket"
}
