package placeshandlers

import (
	"log/slog"
	"net/http"

	placesservice "github.com/Black-And-White-Club/chainchaser/app/modules/places/application"
	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"go.opentelemetry.io/otel/trace"
)

// PlacesHandlers implements the Handlers interface.
type PlacesHandlers struct {
	service placesservice.Service
	locator geo.Locator
	radii   placesservice.Radii
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewPlacesHandlers creates a new PlacesHandlers instance. Zero radii use
// the package defaults.
func NewPlacesHandlers(service placesservice.Service, locator geo.Locator, radii placesservice.Radii, logger *slog.Logger, tracer trace.Tracer) Handlers {
	if radii.Course <= 0 {
		radii.Course = placesdomain.CourseRadius
	}
	if radii.Retailer <= 0 {
		radii.Retailer = placesdomain.RetailerRadius
	}
	return &PlacesHandlers{
		service: service,
		locator: locator,
		radii:   radii,
		logger:  logger,
		tracer:  tracer,
	}
}

type placesResponse struct {
	Location geo.Resolution       `json:"location"`
	Radius   int                  `json:"radius"`
	Places   []placesdomain.Place `json:"places"`
	Message  string               `json:"message,omitempty"`
}

// HandleNearby lists courses near lat/lon, or near the default location when
// no reading is supplied.
func (h *PlacesHandlers) HandleNearby(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlacesHandlers.HandleNearby")
	defer span.End()

	loc := h.locator.Resolve(httpx.QueryPoint(r, "lat", "lon"))
	radius := httpx.QueryInt(r, "radius", 0)
	if radius <= 0 {
		radius = h.radii.Course
	}

	httpx.WriteJSON(w, http.StatusOK, placesResponse{
		Location: loc,
		Radius:   radius,
		Places:   h.service.Courses(ctx, loc.Point, radius),
	})
}

// HandleRetailers suggests disc golf shops. Without a reading it answers
// with a prompt instead of searching around the default location.
func (h *PlacesHandlers) HandleRetailers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PlacesHandlers.HandleRetailers")
	defer span.End()

	reading := httpx.QueryPoint(r, "lat", "lon")
	if !geo.Usable(reading) {
		httpx.WriteJSON(w, http.StatusOK, placesResponse{
			Location: h.locator.Resolve(nil),
			Places:   []placesdomain.Place{},
			Message:  placesdomain.MsgRetailersNeedLocation,
		})
		return
	}

	retailers := h.service.Retailers(ctx, *reading)
	httpx.WriteJSON(w, http.StatusOK, placesResponse{
		Location: h.locator.Resolve(reading),
		Radius:   h.radii.Retailer,
		Places:   retailers,
		Message:  placesdomain.RetailerMessage(retailers),
	})
}
