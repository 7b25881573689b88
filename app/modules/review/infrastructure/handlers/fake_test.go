package reviewhandlers

import (
	"context"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewservice "github.com/Black-And-White-Club/chainchaser/app/modules/review/application"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

type FakeService struct {
	SubmitFunc         func(ctx context.Context, req reviewservice.SubmitRequest) (*reviewservice.SubmitResult, error)
	ListReviewsFunc    func(ctx context.Context) ([]*reviewdb.Review, error)
	ExportReviewsFunc  func(ctx context.Context) ([]byte, error)
	LostDiscHelperFunc func(ctx context.Context, location *geo.Point) *reviewservice.Suggestions
}

func (f *FakeService) Submit(ctx context.Context, req reviewservice.SubmitRequest) (*reviewservice.SubmitResult, error) {
	if f.SubmitFunc != nil {
		return f.SubmitFunc(ctx, req)
	}
	return &reviewservice.SubmitResult{Review: &reviewdb.Review{ID: 1, Course: req.Course}}, nil
}

func (f *FakeService) ListReviews(ctx context.Context) ([]*reviewdb.Review, error) {
	if f.ListReviewsFunc != nil {
		return f.ListReviewsFunc(ctx)
	}
	return []*reviewdb.Review{}, nil
}

func (f *FakeService) ExportReviews(ctx context.Context) ([]byte, error) {
	if f.ExportReviewsFunc != nil {
		return f.ExportReviewsFunc(ctx)
	}
	return []byte("xlsx"), nil
}

func (f *FakeService) LostDiscHelper(ctx context.Context, location *geo.Point) *reviewservice.Suggestions {
	if f.LostDiscHelperFunc != nil {
		return f.LostDiscHelperFunc(ctx, location)
	}
	return &reviewservice.Suggestions{Retailers: []placesdomain.Place{}, Message: placesdomain.MsgRetailersNeedLocation}
}

var _ reviewservice.Service = (*FakeService)(nil)
