package roundservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
	rounddb "github.com/Black-And-White-Club/chainchaser/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/events"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"github.com/Black-And-White-Club/chainchaser/app/shared/xlsx"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "RoundService"

// Session messages
const (
	MsgStartNeedsLocation   = "Allow location access to mark throw."
	MsgLandingNeedsLocation = "Allow location access to mark landing."
	MsgLandingNeedsStart    = "Mark a throw start first."
	MsgRoundLogged          = "Round logged! Check Analytics or Map Courses to see your throws."
)

// RoundService implements the Service interface.
type RoundService struct {
	repo      rounddb.Repository
	sessions  *SessionStore
	dates     *rounddomain.DateParser
	publisher eventbus.Publisher
	logger    *slog.Logger
	deps      operation.Deps
	db        *bun.DB
}

// NewRoundService creates a new RoundService. publisher may be nil.
func NewRoundService(
	repo rounddb.Repository,
	sessions *SessionStore,
	dates *rounddomain.DateParser,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RoundService {
	if logger == nil {
		logger = slog.Default()
	}
	if sessions == nil {
		sessions = NewSessionStore(DefaultSessionIdle)
	}
	if dates == nil {
		dates = rounddomain.NewDateParser(nil)
	}
	return &RoundService{
		repo:      repo,
		sessions:  sessions,
		dates:     dates,
		publisher: publisher,
		logger:    logger,
		deps: operation.Deps{
			Service: serviceName,
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
		},
		db: db,
	}
}

// Session returns the user's in-progress round.
func (s *RoundService) Session(ctx context.Context, username string) *SessionView {
	return newSessionView(s.sessions.Get(username), "")
}

// StartHole opens a new hole.
func (s *RoundService) StartHole(ctx context.Context, username string) *SessionView {
	sess, _ := s.sessions.Update(username, func(sess *rounddomain.Session) error {
		sess.StartHole()
		return nil
	})
	s.logger.DebugContext(ctx, "Hole started", attr.Username(username), attr.Int("hole", len(sess.Holes)))
	return newSessionView(sess, fmt.Sprintf("Hole %d started.", len(sess.Holes)))
}

// MarkStart records the origin of the next throw. Without a usable
// location the session is left unchanged.
func (s *RoundService) MarkStart(ctx context.Context, username string, location *geo.Point) (*SessionView, error) {
	if !geo.Usable(location) {
		return newSessionView(s.sessions.Get(username), MsgStartNeedsLocation), nil
	}

	sess, err := s.sessions.Update(username, func(sess *rounddomain.Session) error {
		return sess.MarkStart(*location)
	})
	if err != nil {
		return nil, err
	}
	return newSessionView(sess, fmt.Sprintf("Start marked: %s", location)), nil
}

// MarkLanding closes the pending throw. Without a usable location or a
// pending start nothing changes.
func (s *RoundService) MarkLanding(ctx context.Context, username string, location *geo.Point) *SessionView {
	if !geo.Usable(location) {
		return newSessionView(s.sessions.Get(username), MsgLandingNeedsLocation)
	}

	var (
		throw    rounddomain.Throw
		recorded bool
	)
	sess, _ := s.sessions.Update(username, func(sess *rounddomain.Session) error {
		throw, recorded = sess.MarkLanding(*location)
		return nil
	})
	if !recorded {
		return newSessionView(sess, MsgLandingNeedsStart)
	}

	view := newSessionView(sess, fmt.Sprintf("Throw distance: %.0f ft", throw.Distance))
	view.LastThrow = &throw
	return view
}

// Finish persists the in-progress round and clears it. On failure the
// session is kept.
func (s *RoundService) Finish(ctx context.Context, username, course, date string) (*RoundView, error) {
	course = strings.TrimSpace(course)
	if course == "" {
		return nil, ErrMissingCourse
	}
	day, err := s.dates.Parse(date)
	if err != nil {
		return nil, err
	}

	// Marks racing the save land in a fresh session instead of being lost.
	sess := s.sessions.Take(username)
	view, err := operation.Unwrap(operation.Run(ctx, s.deps, "Finish", username, func(ctx context.Context) (results.OperationResult[*RoundView, error], error) {
		return operation.InTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*RoundView, error], error) {
			return s.finishLogic(ctx, db, username, course, day, sess.Holes)
		})
	}))
	if err != nil {
		s.sessions.Restore(username, sess)
		return nil, err
	}

	s.publish(ctx, events.RoundLoggedTopic, events.RoundLoggedPayload{
		RoundID:   view.ID,
		Username:  username,
		Course:    view.Course,
		Date:      view.Date,
		Holes:     len(view.Holes),
		Distances: view.Holes.Distances(),
		LoggedAt:  view.CreatedAt,
	})
	return view, nil
}

func (s *RoundService) finishLogic(ctx context.Context, db bun.IDB, username, course, day string, holes rounddomain.Holes) (results.OperationResult[*RoundView, error], error) {
	throwLog, err := rounddomain.EncodeThrowLog(holes)
	if err != nil {
		return results.OperationResult[*RoundView, error]{}, err
	}

	round := &rounddb.Round{
		Username:  username,
		Course:    course,
		Date:      day,
		Throws:    throwLog,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, db, round); err != nil {
		return results.OperationResult[*RoundView, error]{}, err
	}

	return results.SuccessResult[*RoundView, error](s.toView(ctx, round)), nil
}

// ListRounds returns the user's rounds, newest first.
func (s *RoundService) ListRounds(ctx context.Context, username string) ([]*RoundView, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "ListRounds", username, func(ctx context.Context) (results.OperationResult[[]*RoundView, error], error) {
		rounds, err := s.repo.ListByUser(ctx, nil, username)
		if err != nil {
			return results.OperationResult[[]*RoundView, error]{}, err
		}
		views := make([]*RoundView, 0, len(rounds))
		for _, r := range rounds {
			views = append(views, s.toView(ctx, r))
		}
		return results.SuccessResult[[]*RoundView, error](views), nil
	}))
}

// ThrowLogs returns the raw stored throw logs of the user's rounds.
func (s *RoundService) ThrowLogs(ctx context.Context, username string) ([]string, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "ThrowLogs", username, func(ctx context.Context) (results.OperationResult[[]string, error], error) {
		rounds, err := s.repo.ListByUser(ctx, nil, username)
		if err != nil {
			return results.OperationResult[[]string, error]{}, err
		}
		logs := make([]string, 0, len(rounds))
		for _, r := range rounds {
			logs = append(logs, r.Throws)
		}
		return results.SuccessResult[[]string, error](logs), nil
	}))
}

// LatestThrowLog returns the stored throw log of the user's most recent
// round on course.
func (s *RoundService) LatestThrowLog(ctx context.Context, username, course string) (string, bool, error) {
	round, err := s.repo.LatestForCourse(ctx, nil, username, course)
	if err != nil {
		if errors.Is(err, rounddb.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return round.Throws, true, nil
}

// ExportRounds renders the user's rounds as a workbook, one row per throw.
func (s *RoundService) ExportRounds(ctx context.Context, username string) ([]byte, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "ExportRounds", username, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		rounds, err := s.repo.ListByUser(ctx, nil, username)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}

		sheet := xlsx.Sheet{
			Name: "Rounds",
			Header: []string{
				"Round", "Course", "Date", "Hole", "Throw",
				"Start Lat", "Start Lon", "End Lat", "End Lon", "Distance (ft)",
			},
		}
		for _, r := range rounds {
			holes, err := rounddomain.DecodeThrowLog(r.Throws)
			if err != nil {
				s.logger.WarnContext(ctx, "Skipping round with malformed throw log",
					attr.Int64("round_id", r.ID),
					attr.Error(err),
				)
				continue
			}
			for h, throws := range holes {
				for i, t := range throws {
					sheet.Rows = append(sheet.Rows, []any{
						r.ID, r.Course, r.Date, h + 1, i + 1,
						t.StartLat, t.StartLon, t.EndLat, t.EndLon, roundFeet(t.Distance),
					})
				}
			}
		}

		data, err := xlsx.Write(sheet)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		return results.SuccessResult[[]byte, error](data), nil
	}))
}

func (s *RoundService) toView(ctx context.Context, r *rounddb.Round) *RoundView {
	view := &RoundView{
		ID:        r.ID,
		Course:    r.Course,
		Date:      r.Date,
		Holes:     rounddomain.Holes{},
		CreatedAt: r.CreatedAt,
	}
	holes, err := rounddomain.DecodeThrowLog(r.Throws)
	if err != nil {
		s.logger.WarnContext(ctx, "Stored round has a malformed throw log",
			attr.Int64("round_id", r.ID),
			attr.Error(err),
		)
		view.Malformed = true
		return view
	}
	view.Holes = holes
	view.Throws = holes.ThrowCount()
	return view
}

func (s *RoundService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

func newSessionView(sess rounddomain.Session, msg string) *SessionView {
	return &SessionView{Session: sess, Hole: len(sess.Holes), Message: msg}
}

func roundFeet(d float64) float64 {
	return math.Round(d*10) / 10
}
