package pagesservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	analyticsservice "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/application"
	analyticsdomain "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/domain"
	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	pagesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/pages/domain"
	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewdomain "github.com/Black-And-White-Club/chainchaser/app/modules/review/domain"
	roundservice "github.com/Black-And-White-Club/chainchaser/app/modules/round/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var flagstaff = geo.Point{Lat: 35.1983, Lon: -111.6513}

func newTestService(f *FakeModules) *PagesService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPagesService(
		f.Dependencies(),
		geo.Locator{Default: flagstaff},
		20000,
		logger,
		observability.NewNoopMetrics(),
		noop.NewTracerProvider().Tracer("test"),
	)
}

func savedCourses(names ...string) func(context.Context) ([]*courseservice.CourseView, error) {
	return func(context.Context) ([]*courseservice.CourseView, error) {
		out := make([]*courseservice.CourseView, 0, len(names))
		for _, n := range names {
			out = append(out, &courseservice.CourseView{Name: n})
		}
		return out, nil
	}
}

func TestPagesService_Pages(t *testing.T) {
	svc := newTestService(&FakeModules{})

	player := svc.Pages(context.Background(), userdomain.RolePlayer)
	require.Len(t, player, 6)
	for _, p := range player {
		assert.False(t, p.CanEdit, p.Page)
	}

	dev := svc.Pages(context.Background(), userdomain.RoleDeveloper)
	assert.True(t, dev[0].CanEdit)
	assert.Equal(t, pagesdomain.PageMap, dev[0].Page)
	assert.False(t, dev[1].CanEdit)
}

func TestPagesService_Build_UnknownPage(t *testing.T) {
	f := &FakeModules{}
	_, err := newTestService(f).Build(context.Background(), pagesdomain.Page("leaderboard"), Request{})
	assert.ErrorIs(t, err, ErrUnknownPage)
	assert.Empty(t, f.Trace())
}

func TestPagesService_BuildMap(t *testing.T) {
	buffalo := placesdomain.Place{Name: "Buffalo Park", Lat: 35.22, Lon: -111.63}

	t.Run("fallback location and no courses nearby", func(t *testing.T) {
		var searched geo.Point
		var radius int
		f := &FakeModules{
			ListCoursesFunc: savedCourses("Thorpe Park"),
			NearbyCoursesFunc: func(_ context.Context, p geo.Point, r int) []placesdomain.Place {
				searched, radius = p, r
				return []placesdomain.Place{}
			},
		}

		got, err := newTestService(f).Build(context.Background(), pagesdomain.PageMap, Request{Role: userdomain.RolePlayer})
		require.NoError(t, err)
		page := got.(*MapPage)

		assert.True(t, page.Location.Fallback)
		assert.Equal(t, geo.FallbackMessage, page.Location.Message)
		assert.Equal(t, flagstaff, searched)
		assert.Equal(t, 20000, radius)
		assert.Equal(t, 30000, page.BroadenRadius)
		assert.Equal(t, []string{"Thorpe Park", pagesdomain.CustomCourse}, page.Options)
		assert.Contains(t, page.Message, pagesdomain.MsgPopularSpots)
		assert.False(t, page.CanEdit)
		assert.Nil(t, page.Map)
	})

	t.Run("selected nearby course is drawn at its search position", func(t *testing.T) {
		here := &geo.Point{Lat: 35.21, Lon: -111.64}
		var mapReq courseservice.MapRequest
		f := &FakeModules{
			ListCoursesFunc: savedCourses("Thorpe Park", "Buffalo Park"),
			NearbyCoursesFunc: func(_ context.Context, _ geo.Point, r int) []placesdomain.Place {
				assert.Equal(t, 30000, r)
				return []placesdomain.Place{buffalo}
			},
			BuildMapFunc: func(_ context.Context, req courseservice.MapRequest) (*courseservice.MapView, error) {
				mapReq = req
				return &courseservice.MapView{Course: req.Course}, nil
			},
		}

		got, err := newTestService(f).Build(context.Background(), pagesdomain.PageMap, Request{
			Username: "ace",
			Role:     userdomain.RoleDeveloper,
			Location: here,
			Radius:   30000,
			Course:   "Buffalo Park",
		})
		require.NoError(t, err)
		page := got.(*MapPage)

		assert.False(t, page.Location.Fallback)
		assert.Empty(t, page.Message)
		assert.True(t, page.CanEdit)
		assert.Equal(t, []string{"Buffalo Park", "Thorpe Park", pagesdomain.CustomCourse}, page.Options)
		require.NotNil(t, page.Map)
		assert.Equal(t, "ace", mapReq.Username)
		assert.Equal(t, here, mapReq.Current)
		require.NotNil(t, mapReq.Fallback)
		assert.Equal(t, buffalo.Point(), *mapReq.Fallback)
		assert.Equal(t, []string{"ListCourses", "Courses", "BuildMap"}, f.Trace())
	})

	t.Run("custom course is not drawn", func(t *testing.T) {
		f := &FakeModules{}
		_, err := newTestService(f).Build(context.Background(), pagesdomain.PageMap, Request{Course: pagesdomain.CustomCourse})
		require.NoError(t, err)
		assert.NotContains(t, f.Trace(), "BuildMap")
	})

	t.Run("unknown course", func(t *testing.T) {
		f := &FakeModules{
			BuildMapFunc: func(context.Context, courseservice.MapRequest) (*courseservice.MapView, error) {
				return nil, courseservice.ErrCourseNotFound
			},
		}
		_, err := newTestService(f).Build(context.Background(), pagesdomain.PageMap, Request{Course: "Nowhere"})
		assert.ErrorIs(t, err, courseservice.ErrCourseNotFound)
	})

	t.Run("course store failure", func(t *testing.T) {
		f := &FakeModules{
			ListCoursesFunc: func(context.Context) ([]*courseservice.CourseView, error) {
				return nil, errors.New("db down")
			},
		}
		_, err := newTestService(f).Build(context.Background(), pagesdomain.PageMap, Request{})
		assert.Error(t, err)
		assert.Equal(t, []string{"ListCourses"}, f.Trace())
	})
}

func TestPagesService_BuildTrackRound(t *testing.T) {
	session := &roundservice.SessionView{Hole: 2}

	tests := []struct {
		name        string
		location    *geo.Point
		wantOptions []string
		wantMessage string
		wantTrace   []string
	}{
		{
			name:        "saved and nearby names",
			location:    &geo.Point{Lat: 35.2, Lon: -111.65},
			wantOptions: []string{"Thorpe Park", "McPherson Park", pagesdomain.CustomCourse},
			wantTrace:   []string{"ListCourses", "Session", "Courses"},
		},
		{
			name:        "saved names only without GPS",
			wantOptions: []string{"Thorpe Park", pagesdomain.CustomCourse},
			wantMessage: pagesdomain.MsgEnableGPS,
			wantTrace:   []string{"ListCourses", "Session"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FakeModules{
				ListCoursesFunc: savedCourses("Thorpe Park"),
				NearbyCoursesFunc: func(context.Context, geo.Point, int) []placesdomain.Place {
					return []placesdomain.Place{{Name: "Thorpe Park"}, {Name: "McPherson Park"}}
				},
				SessionFunc: func(_ context.Context, username string) *roundservice.SessionView {
					assert.Equal(t, "ace", username)
					return session
				},
			}

			got, err := newTestService(f).Build(context.Background(), pagesdomain.PageTrackRound, Request{Username: "ace", Location: tt.location})
			require.NoError(t, err)
			page := got.(*TrackRoundPage)

			assert.Equal(t, tt.wantOptions, page.Options)
			assert.Equal(t, tt.wantMessage, page.Message)
			assert.Same(t, session, page.Session)
			assert.Equal(t, tt.wantTrace, f.Trace())
		})
	}
}

func TestPagesService_BuildOtherPages(t *testing.T) {
	t.Run("submit review", func(t *testing.T) {
		f := &FakeModules{ListCoursesFunc: savedCourses("Thorpe Park")}
		got, err := newTestService(f).Build(context.Background(), pagesdomain.PageSubmitReview, Request{})
		require.NoError(t, err)
		page := got.(*SubmitReviewPage)
		assert.Equal(t, []string{"Thorpe Park"}, page.Courses)
		assert.Equal(t, reviewdomain.MinRating, page.MinRating)
		assert.Equal(t, reviewdomain.MaxRating, page.MaxRating)
	})

	t.Run("reviews", func(t *testing.T) {
		got, err := newTestService(&FakeModules{}).Build(context.Background(), pagesdomain.PageReviews, Request{})
		require.NoError(t, err)
		assert.NotNil(t, got.(*ReviewsPage).Reviews)
	})

	t.Run("analytics without throws has no chart", func(t *testing.T) {
		got, err := newTestService(&FakeModules{}).Build(context.Background(), pagesdomain.PageAnalytics, Request{Username: "ace"})
		require.NoError(t, err)
		page := got.(*AnalyticsPage)
		assert.Equal(t, analyticsdomain.MsgNoRounds, page.Summary.Message)
		assert.Empty(t, page.HistogramURL)
	})

	t.Run("analytics with throws links the chart", func(t *testing.T) {
		f := &FakeModules{
			SummaryFunc: func(context.Context, string) (*analyticsservice.Summary, error) {
				advice := analyticsdomain.AdviceFor(320)
				return &analyticsservice.Summary{Rounds: 1, Advice: &advice}, nil
			},
		}
		got, err := newTestService(f).Build(context.Background(), pagesdomain.PageAnalytics, Request{Username: "ace"})
		require.NoError(t, err)
		assert.Equal(t, HistogramPath, got.(*AnalyticsPage).HistogramURL)
	})

	t.Run("lost disc", func(t *testing.T) {
		got, err := newTestService(&FakeModules{}).Build(context.Background(), pagesdomain.PageLostDisc, Request{})
		require.NoError(t, err)
		assert.Equal(t, placesdomain.MsgRetailersNeedLocation, got.(*LostDiscPage).Suggestions.Message)
	})
}
