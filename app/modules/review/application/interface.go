package reviewservice

import (
	"context"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// Service defines the contract for reviews and the lost-disc helper.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	ListReviews(ctx context.Context) ([]*reviewdb.Review, error)
	ExportReviews(ctx context.Context) ([]byte, error)
	LostDiscHelper(ctx context.Context, location *geo.Point) *Suggestions
}

// RetailerFinder looks up disc golf retailers near a point.
type RetailerFinder interface {
	Retailers(ctx context.Context, p geo.Point) []placesdomain.Place
}

// SubmitRequest is a new review. Location is only used for retailer
// suggestions on a flagged review.
type SubmitRequest struct {
	Username string
	Course   string
	Rating   int
	Comment  string
	Location *geo.Point
}

// SubmitResult is the stored review and, when it was flagged, replacement
// suggestions.
type SubmitResult struct {
	Review      *reviewdb.Review `json:"review"`
	Suggestions *Suggestions     `json:"suggestions,omitempty"`
}

// Suggestions are nearby retailers with a display message.
type Suggestions struct {
	Retailers []placesdomain.Place `json:"retailers"`
	Message   string               `json:"message"`
}
