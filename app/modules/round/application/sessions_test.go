package roundservice

import (
	"fmt"
	"sync"
	"testing"
	"time"

	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) Now() time.Time { return f.t }

func (f *fakeNow) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newClockedStore(idle time.Duration) (*SessionStore, *fakeNow) {
	clock := &fakeNow{t: testNow}
	store := NewSessionStore(idle)
	store.now = clock.Now
	return store, clock
}

func startHole(s *rounddomain.Session) error {
	s.StartHole()
	return nil
}

func TestSessionStore_ConcurrentUpdates(t *testing.T) {
	store := NewSessionStore(DefaultSessionIdle)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update("ace", func(s *rounddomain.Session) error {
				s.StartHole()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, store.Get("ace").Holes, 50)
	assert.Empty(t, store.Get("birdie").Holes)
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	store := NewSessionStore(DefaultSessionIdle)
	_, _ = store.Update("ace", func(s *rounddomain.Session) error {
		s.StartHole()
		return nil
	})

	snap := store.Get("ace")
	snap.Holes = append(snap.Holes, []rounddomain.Throw{})

	assert.Len(t, store.Get("ace").Holes, 1)

	store.Clear("ace")
	assert.Empty(t, store.Get("ace").Holes)
}

func TestSessionStore_IdleSessionsExpire(t *testing.T) {
	store, clock := newClockedStore(time.Hour)
	_, _ = store.Update("ace", startHole)

	clock.Advance(59 * time.Minute)
	assert.Len(t, store.Get("ace").Holes, 1)

	// Touching the round restarts the idle window.
	_, _ = store.Update("ace", startHole)
	clock.Advance(59 * time.Minute)
	assert.Len(t, store.Get("ace").Holes, 2)

	clock.Advance(2 * time.Minute)
	assert.Empty(t, store.Get("ace").Holes)
	assert.Zero(t, store.Len())

	sess, _ := store.Update("ace", startHole)
	assert.Len(t, sess.Holes, 1)
}

func TestSessionStore_PrunesAbandonedRounds(t *testing.T) {
	store, clock := newClockedStore(time.Hour)
	for i := 0; i <= sessionPruneThreshold; i++ {
		_, _ = store.Update(fmt.Sprintf("player-%d", i), startHole)
	}
	require.Equal(t, sessionPruneThreshold+1, store.Len())

	clock.Advance(2 * time.Hour)
	_, _ = store.Update("ace", startHole)

	assert.Equal(t, 1, store.Len())
	assert.Len(t, store.Get("ace").Holes, 1)
}

func TestSessionStore_TakeAndRestore(t *testing.T) {
	store := NewSessionStore(DefaultSessionIdle)
	_, _ = store.Update("ace", func(s *rounddomain.Session) error {
		s.StartHole()
		return s.MarkStart(geo.Point{Lat: 35.2, Lon: -111.6})
	})

	taken := store.Take("ace")
	require.Len(t, taken.Holes, 1)
	assert.Zero(t, store.Len())

	_, _ = store.Update("ace", startHole)
	store.Restore("ace", taken)

	sess := store.Get("ace")
	assert.Len(t, sess.Holes, 2)
	require.NotNil(t, sess.Pending)
	assert.Equal(t, geo.Point{Lat: 35.2, Lon: -111.6}, *sess.Pending)

	assert.Empty(t, store.Take("birdie").Holes)
}
