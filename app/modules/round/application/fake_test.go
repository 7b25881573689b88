package roundservice

import (
	"context"
	"sync"

	rounddb "github.com/Black-And-White-Club/chainchaser/app/modules/round/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Round Repo
// ------------------------

type FakeRoundRepo struct {
	trace []string

	CreateFunc          func(ctx context.Context, db bun.IDB, round *rounddb.Round) error
	ListByUserFunc      func(ctx context.Context, db bun.IDB, username string) ([]*rounddb.Round, error)
	LatestForCourseFunc func(ctx context.Context, db bun.IDB, username, course string) (*rounddb.Round, error)
}

func NewFakeRoundRepo() *FakeRoundRepo {
	return &FakeRoundRepo{
		trace: []string{},
	}
}

func (f *FakeRoundRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundRepo) Create(ctx context.Context, db bun.IDB, round *rounddb.Round) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, round)
	}
	round.ID = 1
	return nil
}

func (f *FakeRoundRepo) ListByUser(ctx context.Context, db bun.IDB, username string) ([]*rounddb.Round, error) {
	f.record("ListByUser")
	if f.ListByUserFunc != nil {
		return f.ListByUserFunc(ctx, db, username)
	}
	return []*rounddb.Round{}, nil
}

func (f *FakeRoundRepo) LatestForCourse(ctx context.Context, db bun.IDB, username, course string) (*rounddb.Round, error) {
	f.record("LatestForCourse")
	if f.LatestForCourseFunc != nil {
		return f.LatestForCourseFunc(ctx, db, username, course)
	}
	return nil, rounddb.ErrNotFound
}

func (f *FakeRoundRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ rounddb.Repository = (*FakeRoundRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu        sync.Mutex
	Published []publishedEvent
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Published = append(f.Published, publishedEvent{Topic: topic, Payload: payload})
	return nil
}
