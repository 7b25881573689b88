package courseservice

import (
	"context"
	"errors"
	"fmt"

	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
	coursedb "github.com/Black-And-White-Club/chainchaser/app/modules/course/infrastructure/repositories"
	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds
const (
	KindCourse      = "course"
	KindYouAreHere  = "you-are-here"
	KindTee         = "tee"
	KindBasket      = "basket"
	KindParLine     = "par-line"
	KindThrowStart  = "throw-start"
	KindThrowLanded = "throw-landing"
)

// MapConfig holds the tile layer and initial zoom.
type MapConfig struct {
	TileURL         string
	TileAttribution string
	Zoom            int
}

func (c MapConfig) withDefaults() MapConfig {
	if c.TileURL == "" {
		c.TileURL = "https://mt1.google.com/vt/lyrs=s&x={x}&y={y}&z={z}"
		c.TileAttribution = "Google Satellite"
	}
	if c.Zoom == 0 {
		c.Zoom = 15
	}
	return c
}

// MapView is everything the page needs to draw a course.
type MapView struct {
	Course          string                     `json:"course"`
	Center          geo.Point                  `json:"center"`
	Zoom            int                        `json:"zoom"`
	TileURL         string                     `json:"tile_url"`
	TileAttribution string                     `json:"tile_attribution"`
	Saved           bool                       `json:"saved"`
	LayoutVersion   int                        `json:"layout_version"`
	ScoredLines     []coursedomain.ScoredLine  `json:"scored_lines"`
	Features        *geojson.FeatureCollection `json:"features"`
}

// BuildMap draws a course's layout, the user's position and the user's most
// recent round on it.
func (s *CourseService) BuildMap(ctx context.Context, req MapRequest) (*MapView, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "BuildMap", req.Course, func(ctx context.Context) (results.OperationResult[*MapView, error], error) {
		return s.buildMapLogic(ctx, req)
	}))
}

func (s *CourseService) buildMapLogic(ctx context.Context, req MapRequest) (results.OperationResult[*MapView, error], error) {
	view := &MapView{
		Course:          req.Course,
		Zoom:            s.mapConfig.Zoom,
		TileURL:         s.mapConfig.TileURL,
		TileAttribution: s.mapConfig.TileAttribution,
	}

	layout := coursedomain.Layout{Holes: []coursedomain.Hole{}}
	course, err := s.repo.GetByName(ctx, nil, req.Course)
	switch {
	case err == nil:
		view.Saved = true
		view.Center = geo.Point{Lat: course.Lat, Lon: course.Lon}
		view.LayoutVersion = course.LayoutVersion
		layout = s.decodeLayout(ctx, course)
	case errors.Is(err, coursedb.ErrNotFound):
		if req.Fallback == nil || !req.Fallback.Valid() {
			return results.FailureResult[*MapView, error](ErrCourseNotFound), nil
		}
		view.Center = *req.Fallback
	default:
		return results.OperationResult[*MapView, error]{}, err
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(marker(view.Center, KindCourse, "green", "flag", req.Course))
	if geo.Usable(req.Current) {
		fc.Append(marker(*req.Current, KindYouAreHere, "red", "circle", "You Are Here"))
	}
	appendLayout(fc, layout)

	view.ScoredLines = layout.ScoredLines()
	for _, line := range view.ScoredLines {
		f := geojson.NewFeature(orb.LineString{line.Tee.Orb(), line.Basket.Orb()})
		f.Properties["kind"] = KindParLine
		f.Properties["color"] = "green"
		f.Properties["weight"] = 2
		f.Properties["hole"] = line.Hole
		f.Properties["basket_id"] = line.BasketID
		f.Properties["par"] = line.Par
		f.Properties["distance_ft"] = line.DistanceFt
		f.Properties["popup"] = fmt.Sprintf("Par %d (%.0f ft)", line.Par, line.DistanceFt)
		fc.Append(f)
	}

	s.appendLatestRound(ctx, fc, req.Username, req.Course)

	view.Features = fc
	return results.SuccessResult[*MapView, error](view), nil
}

func appendLayout(fc *geojson.FeatureCollection, layout coursedomain.Layout) {
	for _, h := range layout.Holes {
		if h.Tee != nil {
			f := marker(*h.Tee, KindTee, "orange", "map-marker", fmt.Sprintf("Hole %d Tee", h.Number))
			f.Properties["hole"] = h.Number
			fc.Append(f)
		}
		for _, b := range h.Baskets {
			color := "gray"
			if b.Active {
				color = "blue"
			}
			f := marker(b.Point(), KindBasket, color, "map-marker",
				fmt.Sprintf("Hole %d Basket %d (Active: %t)", h.Number, b.ID, b.Active))
			f.Properties["hole"] = h.Number
			f.Properties["basket_id"] = b.ID
			f.Properties["active"] = b.Active
			fc.Append(f)
		}
	}
}

// appendLatestRound adds start and landing markers for the user's most
// recent round on the course. A malformed throw log adds nothing.
func (s *CourseService) appendLatestRound(ctx context.Context, fc *geojson.FeatureCollection, username, course string) {
	if s.rounds == nil || username == "" {
		return
	}

	throwLog, ok, err := s.rounds.LatestThrowLog(ctx, username, course)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load latest round", attr.Username(username), attr.Course(course), attr.Error(err))
		return
	}
	if !ok {
		return
	}

	holes, err := rounddomain.DecodeThrowLog(throwLog)
	if err != nil {
		s.logger.WarnContext(ctx, "Latest round has a malformed throw log", attr.Username(username), attr.Course(course), attr.Error(err))
		return
	}

	for h, throws := range holes {
		for i, t := range throws {
			start := marker(t.Start(), KindThrowStart, "purple", "play",
				fmt.Sprintf("Hole %d Throw %d Start", h+1, i+1))
			landing := marker(t.End(), KindThrowLanded, "red", "stop",
				fmt.Sprintf("Hole %d Throw %d Landing (%.0f ft)", h+1, i+1, t.Distance))
			landing.Properties["distance_ft"] = t.Distance
			fc.Append(start)
			fc.Append(landing)
		}
	}
}

func marker(p geo.Point, kind, color, icon, popup string) *geojson.Feature {
	f := geojson.NewFeature(p.Orb())
	f.Properties["kind"] = kind
	f.Properties["color"] = color
	f.Properties["icon"] = icon
	f.Properties["popup"] = popup
	return f
}
