package placesservice

import (
	"context"

	placesdomain "github.com/Black-And-White-Club/chainchaser/app/modules/places/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// Service finds disc golf courses and retailers near a point. Lookups never
// fail; an unavailable index narrows the result instead.
type Service interface {
	Nearby(ctx context.Context, p geo.Point, radius int, keywords []string) []placesdomain.Place
	Courses(ctx context.Context, p geo.Point, radius int) []placesdomain.Place
	Retailers(ctx context.Context, p geo.Point) []placesdomain.Place
}

// Searcher runs a single keyword query against a places index.
type Searcher interface {
	Configured() bool
	Search(ctx context.Context, p geo.Point, radius int, keyword string) ([]placesdomain.Place, error)
}
