package rounddomain

import (
	"errors"

	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

// ErrNoHoleOpen is returned when marking a throw start before any hole exists.
var ErrNoHoleOpen = errors.New("start a hole before marking a throw")

// Session is an in-progress round. Not safe for concurrent use; callers
// serialize access.
type Session struct {
	Holes   Holes      `json:"holes"`
	Pending *geo.Point `json:"pending,omitempty"`
}

// StartHole opens a new, empty hole. A pending throw origin carries over.
func (s *Session) StartHole() int {
	s.Holes = append(s.Holes, []Throw{})
	return len(s.Holes)
}

// MarkStart records the origin of the next throw on the current hole.
func (s *Session) MarkStart(p geo.Point) error {
	if len(s.Holes) == 0 {
		return ErrNoHoleOpen
	}
	origin := p
	s.Pending = &origin
	return nil
}

// MarkLanding closes the pending throw at p on the current hole and makes p
// the next origin. Without a pending origin it changes nothing and reports
// false.
func (s *Session) MarkLanding(p geo.Point) (Throw, bool) {
	if s.Pending == nil || len(s.Holes) == 0 {
		return Throw{}, false
	}

	t := NewThrow(*s.Pending, p)
	last := len(s.Holes) - 1
	s.Holes[last] = append(s.Holes[last], t)

	origin := p
	s.Pending = &origin
	return t, true
}

// Reset clears holes and the pending origin.
func (s *Session) Reset() {
	s.Holes = nil
	s.Pending = nil
}

// Snapshot returns a deep copy safe to hand outside the lock.
func (s *Session) Snapshot() Session {
	out := Session{Holes: s.Holes.Clone()}
	if out.Holes == nil {
		out.Holes = Holes{}
	}
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	return out
}
