package placesservice

import (
	"context"
	"sync"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

type searchCall struct {
	Radius  int
	Keyword string
}

type FakeSearcher struct {
	mu    sync.Mutex
	calls []searchCall

	NoKey      bool
	SearchFunc func(ctx context.Context, p geo.Point, radius int, keyword string) ([]placesdomain.Place, error)
}

func (f *FakeSearcher) Configured() bool { return !f.NoKey }

func (f *FakeSearcher) Search(ctx context.Context, p geo.Point, radius int, keyword string) ([]placesdomain.Place, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{Radius: radius, Keyword: keyword})
	f.mu.Unlock()
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, p, radius, keyword)
	}
	return nil, nil
}

func (f *FakeSearcher) Calls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]searchCall, len(f.calls))
	copy(out, f.calls)
	return out
}

var _ Searcher = (*FakeSearcher)(nil)
