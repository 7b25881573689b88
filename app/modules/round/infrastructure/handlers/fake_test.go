package roundhandlers

import (
	"context"

	roundservice "github.com/Black-And-White-Club/chainchaser/app/modules/round/application"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

type FakeService struct {
	SessionFunc        func(ctx context.Context, username string) *roundservice.SessionView
	StartHoleFunc      func(ctx context.Context, username string) *roundservice.SessionView
	MarkStartFunc      func(ctx context.Context, username string, location *geo.Point) (*roundservice.SessionView, error)
	MarkLandingFunc    func(ctx context.Context, username string, location *geo.Point) *roundservice.SessionView
	FinishFunc         func(ctx context.Context, username, course, date string) (*roundservice.RoundView, error)
	ListRoundsFunc     func(ctx context.Context, username string) ([]*roundservice.RoundView, error)
	ThrowLogsFunc      func(ctx context.Context, username string) ([]string, error)
	LatestThrowLogFunc func(ctx context.Context, username, course string) (string, bool, error)
	ExportRoundsFunc   func(ctx context.Context, username string) ([]byte, error)
}

func (f *FakeService) Session(ctx context.Context, username string) *roundservice.SessionView {
	if f.SessionFunc != nil {
		return f.SessionFunc(ctx, username)
	}
	return &roundservice.SessionView{}
}

func (f *FakeService) StartHole(ctx context.Context, username string) *roundservice.SessionView {
	if f.StartHoleFunc != nil {
		return f.StartHoleFunc(ctx, username)
	}
	return &roundservice.SessionView{Hole: 1}
}

func (f *FakeService) MarkStart(ctx context.Context, username string, location *geo.Point) (*roundservice.SessionView, error) {
	if f.MarkStartFunc != nil {
		return f.MarkStartFunc(ctx, username, location)
	}
	return &roundservice.SessionView{}, nil
}

func (f *FakeService) MarkLanding(ctx context.Context, username string, location *geo.Point) *roundservice.SessionView {
	if f.MarkLandingFunc != nil {
		return f.MarkLandingFunc(ctx, username, location)
	}
	return &roundservice.SessionView{}
}

func (f *FakeService) Finish(ctx context.Context, username, course, date string) (*roundservice.RoundView, error) {
	if f.FinishFunc != nil {
		return f.FinishFunc(ctx, username, course, date)
	}
	return &roundservice.RoundView{Course: course, Date: date}, nil
}

func (f *FakeService) ListRounds(ctx context.Context, username string) ([]*roundservice.RoundView, error) {
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx, username)
	}
	return []*roundservice.RoundView{}, nil
}

func (f *FakeService) ThrowLogs(ctx context.Context, username string) ([]string, error) {
	if f.ThrowLogsFunc != nil {
		return f.ThrowLogsFunc(ctx, username)
	}
	return nil, nil
}

func (f *FakeService) LatestThrowLog(ctx context.Context, username, course string) (string, bool, error) {
	if f.LatestThrowLogFunc != nil {
		return f.LatestThrowLogFunc(ctx, username, course)
	}
	return "", false, nil
}

func (f *FakeService) ExportRounds(ctx context.Context, username string) ([]byte, error) {
	if f.ExportRoundsFunc != nil {
		return f.ExportRoundsFunc(ctx, username)
	}
	return []byte("xlsx"), nil
}

var _ roundservice.Service = (*FakeService)(nil)
