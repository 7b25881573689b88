package rounddb

import (
	"context"
	"testing"

	"github.com/Black-And-White-Club/chainchaser/app/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLiteMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, nil))
	return db
}

func TestImpl_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	rounds := []*Round{
		{Username: "ace", Course: "Thorpe Park", Date: "2026-03-01", Throws: `{"version":1,"holes":[]}`},
		{Username: "ace", Course: "Thorpe Park", Date: "2026-03-07", Throws: `{"version":1,"holes":[[]]}`},
		{Username: "ace", Course: "Buffalo Park", Date: "2026-03-09", Throws: `{"version":1,"holes":[]}`},
		{Username: "birdie", Course: "Thorpe Park", Date: "2026-03-10", Throws: `{"version":1,"holes":[]}`},
	}
	for _, r := range rounds {
		require.NoError(t, repo.Create(ctx, nil, r))
		assert.NotZero(t, r.ID)
	}

	got, err := repo.ListByUser(ctx, nil, "ace")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-03-09", got[0].Date)
	assert.Equal(t, "2026-03-01", got[2].Date)

	latest, err := repo.LatestForCourse(ctx, nil, "ace", "Thorpe Park")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-07", latest.Date)
	assert.Equal(t, `{"version":1,"holes":[[]]}`, latest.Throws)

	_, err = repo.LatestForCourse(ctx, nil, "ace", "Fort Tuthill")
	assert.ErrorIs(t, err, ErrNotFound)

	none, err := repo.ListByUser(ctx, nil, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)
}
