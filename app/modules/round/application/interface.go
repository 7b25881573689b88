package roundservice

import (
	"context"
	"time"

	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// Service defines the contract for round tracking.
type Service interface {
	Session(ctx context.Context, username string) *SessionView
	StartHole(ctx context.Context, username string) *SessionView
	MarkStart(ctx context.Context, username string, location *geo.Point) (*SessionView, error)
	MarkLanding(ctx context.Context, username string, location *geo.Point) *SessionView
	Finish(ctx context.Context, username, course, date string) (*RoundView, error)

	ListRounds(ctx context.Context, username string) ([]*RoundView, error)
	ThrowLogs(ctx context.Context, username string) ([]string, error)
	LatestThrowLog(ctx context.Context, username, course string) (string, bool, error)
	ExportRounds(ctx context.Context, username string) ([]byte, error)
}

// SessionView is the in-progress round plus the outcome of the last action.
type SessionView struct {
	Session   rounddomain.Session `json:"session"`
	Hole      int                 `json:"hole"`
	LastThrow *rounddomain.Throw  `json:"last_throw,omitempty"`
	Message   string              `json:"message,omitempty"`
}

// RoundView is a stored round. Holes is empty when the throw log is malformed.
type RoundView struct {
	ID        int64             `json:"id"`
	Course    string            `json:"course"`
	Date      string            `json:"date"`
	Holes     rounddomain.Holes `json:"holes"`
	Throws    int               `json:"throws"`
	Malformed bool              `json:"malformed,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
