package analyticsservice

import (
	"context"

	analyticsdomain "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/domain"
)

// Service defines the contract for throw analytics.
type Service interface {
	Summary(ctx context.Context, username string) (*Summary, error)
	HistogramPNG(ctx context.Context, username string) ([]byte, error)
}

// ThrowLogSource loads the stored throw logs of a user's rounds.
type ThrowLogSource interface {
	ThrowLogs(ctx context.Context, username string) ([]string, error)
}

// Summary is a user's throw statistics. Advice is nil until at least one
// throw has been recorded; Message explains why.
type Summary struct {
	Rounds        int                     `json:"rounds"`
	SkippedRounds int                     `json:"skipped_rounds"`
	Stats         analyticsdomain.Stats   `json:"stats"`
	Advice        *analyticsdomain.Advice `json:"advice,omitempty"`
	Message       string                  `json:"message"`
}
