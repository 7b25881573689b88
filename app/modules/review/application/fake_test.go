package reviewservice

import (
	"context"
	"sync"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Review Repo
// ------------------------

type FakeReviewRepo struct {
	trace []string

	CreateFunc func(ctx context.Context, db bun.IDB, review *reviewdb.Review) error
	ListFunc   func(ctx context.Context, db bun.IDB) ([]*reviewdb.Review, error)
}

func NewFakeReviewRepo() *FakeReviewRepo {
	return &FakeReviewRepo{
		trace: []string{},
	}
}

func (f *FakeReviewRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeReviewRepo) Create(ctx context.Context, db bun.IDB, review *reviewdb.Review) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, review)
	}
	review.ID = 1
	return nil
}

func (f *FakeReviewRepo) List(ctx context.Context, db bun.IDB) ([]*reviewdb.Review, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return []*reviewdb.Review{}, nil
}

func (f *FakeReviewRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ reviewdb.Repository = (*FakeReviewRepo)(nil)

// ------------------------
// Fake Retailer Finder
// ------------------------

type FakeRetailerFinder struct {
	Calls         int
	RetailersFunc func(ctx context.Context, p geo.Point) []placesdomain.Place
}

func (f *FakeRetailerFinder) Retailers(ctx context.Context, p geo.Point) []placesdomain.Place {
	f.Calls++
	if f.RetailersFunc != nil {
		return f.RetailersFunc(ctx, p)
	}
	return []placesdomain.Place{}
}

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
