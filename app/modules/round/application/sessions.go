package roundservice

import (
	"sync"
	"time"

	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
)

const (
	// DefaultSessionIdle is how long an untouched round survives.
	DefaultSessionIdle = 12 * time.Hour

	sessionPruneThreshold = 256
)

type sessionEntry struct {
	session     *rounddomain.Session
	lastTouched time.Time
}

// SessionStore holds each user's in-progress round in memory. Rounds idle
// longer than the configured window are dropped.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idle     time.Duration
	now      func() time.Time
}

// NewSessionStore creates an empty store. idle <= 0 uses DefaultSessionIdle.
func NewSessionStore(idle time.Duration) *SessionStore {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		idle:     idle,
		now:      time.Now,
	}
}

// Get returns a copy of the user's session.
func (s *SessionStore) Get(username string) rounddomain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.live(username); e != nil {
		return e.session.Snapshot()
	}
	empty := rounddomain.Session{}
	return empty.Snapshot()
}

// Update runs fn against the user's session under the lock and returns a
// copy of the result.
func (s *SessionStore) Update(username string, fn func(*rounddomain.Session) error) (rounddomain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	e := s.live(username)
	if e == nil {
		e = &sessionEntry{session: &rounddomain.Session{}}
		s.sessions[username] = e
	}
	e.lastTouched = s.now()
	err := fn(e.session)
	return e.session.Snapshot(), err
}

// Take removes the user's session and returns it. Marks arriving after
// Take start from an empty session.
func (s *SessionStore) Take(username string) rounddomain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(username)
	delete(s.sessions, username)
	if e == nil {
		empty := rounddomain.Session{}
		return empty.Snapshot()
	}
	return e.session.Snapshot()
}

// Restore puts back a session returned by Take. Holes recorded since are
// kept after the restored ones, and their pending origin wins.
func (s *SessionStore) Restore(username string, taken rounddomain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored := taken.Snapshot()
	if e := s.live(username); e != nil {
		restored.Holes = append(restored.Holes, e.session.Holes.Clone()...)
		if e.session.Pending != nil {
			p := *e.session.Pending
			restored.Pending = &p
		}
	}
	s.sessions[username] = &sessionEntry{session: &restored, lastTouched: s.now()}
}

// Clear discards the user's session.
func (s *SessionStore) Clear(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, username)
}

// Len reports how many sessions are held, including expired ones not yet
// pruned.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// live returns the user's entry, dropping it when idle too long. Callers
// hold the lock.
func (s *SessionStore) live(username string) *sessionEntry {
	e, ok := s.sessions[username]
	if !ok {
		return nil
	}
	if s.now().Sub(e.lastTouched) > s.idle {
		delete(s.sessions, username)
		return nil
	}
	return e
}

// pruneLocked drops idle sessions once the map grows past the threshold.
func (s *SessionStore) pruneLocked() {
	if len(s.sessions) <= sessionPruneThreshold {
		return
	}
	cutoff := s.now().Add(-s.idle)
	for k, e := range s.sessions {
		if e.lastTouched.Before(cutoff) {
			delete(s.sessions, k)
		}
	}
}
