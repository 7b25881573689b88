package courseservice

import (
	"context"
	"sync"

	coursedb "github.com/Black-And-White-Club/chainchaser/app/modules/course/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Course Repo
// ------------------------

type FakeCourseRepo struct {
	trace []string

	UpsertFunc       func(ctx context.Context, db bun.IDB, course *coursedb.Course) error
	ListFunc         func(ctx context.Context, db bun.IDB) ([]*coursedb.Course, error)
	GetByNameFunc    func(ctx context.Context, db bun.IDB, name string) (*coursedb.Course, error)
	UpdateLayoutFunc func(ctx context.Context, db bun.IDB, name, layout string, expectedVersion int) (int, error)
}

func NewFakeCourseRepo() *FakeCourseRepo {
	return &FakeCourseRepo{
		trace: []string{},
	}
}

func (f *FakeCourseRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeCourseRepo) Upsert(ctx context.Context, db bun.IDB, course *coursedb.Course) error {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, course)
	}
	return nil
}

func (f *FakeCourseRepo) List(ctx context.Context, db bun.IDB) ([]*coursedb.Course, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return []*coursedb.Course{}, nil
}

func (f *FakeCourseRepo) GetByName(ctx context.Context, db bun.IDB, name string) (*coursedb.Course, error) {
	f.record("GetByName")
	if f.GetByNameFunc != nil {
		return f.GetByNameFunc(ctx, db, name)
	}
	return nil, coursedb.ErrNotFound
}

func (f *FakeCourseRepo) UpdateLayout(ctx context.Context, db bun.IDB, name, layout string, expectedVersion int) (int, error) {
	f.record("UpdateLayout")
	if f.UpdateLayoutFunc != nil {
		return f.UpdateLayoutFunc(ctx, db, name, layout, expectedVersion)
	}
	return expectedVersion + 1, nil
}

func (f *FakeCourseRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ coursedb.Repository = (*FakeCourseRepo)(nil)

// ------------------------
// Fake Round History
// ------------------------

type FakeRoundHistory struct {
	LatestThrowLogFunc func(ctx context.Context, username, course string) (string, bool, error)
}

func (f *FakeRoundHistory) LatestThrowLog(ctx context.Context, username, course string) (string, bool, error) {
	if f.LatestThrowLogFunc != nil {
		return f.LatestThrowLogFunc(ctx, username, course)
	}
	return "", false, nil
}

var _ RoundHistory = (*FakeRoundHistory)(nil)

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
	Err       error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Published = append(f.Published, publishedEvent{Topic: topic, Payload: payload})
	return nil
}
