package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"sains-quiz-service/internal/domain"
)

type leaderboardRow struct {
	bun.BaseModel `bun:"table:leaderboard"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Name  string `bun:"name,notnull"`
	Score int    `bun:"score,notnull"`
	Date  string `bun:"date,notnull"`
}

// Leaderboard keeps the global leaderboard in the Postgres leaderboard table.
// Rows are only ever inserted.
type Leaderboard struct {
	db *bun.DB
}

func NewLeaderboard(db *bun.DB) *Leaderboard {
	return &Leaderboard{db: db}
}

func (l *Leaderboard) Save(ctx context.Context, entry domain.LeaderboardEntry) error {
	row := &leaderboardRow{Name: entry.Name, Score: entry.Score, Date: entry.Date()}
	if _, err := l.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert leaderboard row: %w", err)
	}
	return nil
}

func (l *Leaderboard) LoadTop(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	var rows []leaderboardRow
	q := l.db.NewSelect().
		Model(&rows).
		Where("name <> ''").
		Where("score >= 0").
		OrderExpr("score DESC, id ASC")
	if n > 0 {
		q = q.Limit(n)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		created, _ := time.Parse(domain.DateLayout, row.Date)
		entries = append(entries, domain.LeaderboardEntry{Name: row.Name, Score: row.Score, CreatedAt: created})
	}
	return entries, nil
}
