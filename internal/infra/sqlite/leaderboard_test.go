package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sains-quiz-service/internal/domain"
)

func TestLeaderboardSaveAndLoadTop(t *testing.T) {
	ctx := context.Background()
	lb, err := Open(ctx, filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer lb.Close()

	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	for _, e := range []domain.LeaderboardEntry{
		{Name: "Alice", Score: 7, CreatedAt: now},
		{Name: "Bob", Score: 9, CreatedAt: now},
		{Name: "Cara", Score: 7, CreatedAt: now},
	} {
		require.NoError(t, lb.Save(ctx, e))
	}

	top, err := lb.LoadTop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Bob", "Alice", "Cara"}, []string{top[0].Name, top[1].Name, top[2].Name})
	assert.True(t, top[0].CreatedAt.Equal(now))

	top, err = lb.LoadTop(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Bob", top[0].Name)

	for _, n := range []int{0, -1} {
		all, err := lb.LoadTop(ctx, n)
		require.NoError(t, err)
		assert.Len(t, all, 3, "n=%d returns every row", n)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	ctx := context.Background()
	lb, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer lb.Close()

	top, err := lb.LoadTop(ctx, 10)
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestLeaderboardSkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	lb, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer lb.Close()

	require.NoError(t, lb.Save(ctx, domain.LeaderboardEntry{Name: "Alice", Score: 4}))
	_, err = lb.db.ExecContext(ctx, `INSERT INTO leaderboard (name, score, date) VALUES ('Bob', 'lots', ''), ('', 9, ''), ('Cara', 2.5, '')`)
	require.NoError(t, err)

	top, err := lb.LoadTop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Alice", top[0].Name)
}

func TestOpenRecreatesTableWithWrongHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = first.db.ExecContext(ctx, `DROP TABLE leaderboard`)
	require.NoError(t, err)
	_, err = first.db.ExecContext(ctx, `CREATE TABLE leaderboard (player TEXT, points INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	lb, err := Open(ctx, path)
	require.NoError(t, err)
	defer lb.Close()

	columns, err := lb.columns(ctx)
	require.NoError(t, err)
	assert.Equal(t, leaderboardColumns, columns)
	require.NoError(t, lb.Save(ctx, domain.LeaderboardEntry{Name: "Alice", Score: 1}))
}
