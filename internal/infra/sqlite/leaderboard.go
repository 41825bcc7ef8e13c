package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"sains-quiz-service/internal/domain"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var leaderboardColumns = []string{"id", "name", "score", "date"}

const createLeaderboardSQL = `CREATE TABLE IF NOT EXISTS leaderboard (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	name  TEXT NOT NULL,
	score INTEGER NOT NULL,
	date  TEXT NOT NULL
);`

// Leaderboard keeps scores in a local SQLite file.
type Leaderboard struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and makes sure the
// leaderboard table has the expected columns, recreating it when it does not.
func Open(ctx context.Context, path string) (*Leaderboard, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	lb := &Leaderboard{db: db}
	if err := lb.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return lb, nil
}

func (l *Leaderboard) Close() error {
	return l.db.Close()
}

func (l *Leaderboard) Save(ctx context.Context, entry domain.LeaderboardEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO leaderboard (name, score, date) VALUES (?, ?, ?)`,
		entry.Name, entry.Score, entry.Date())
	if err != nil {
		return fmt.Errorf("insert leaderboard row: %w", err)
	}
	return nil
}

func (l *Leaderboard) LoadTop(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if n <= 0 {
		n = -1 // no limit
	}
	// SQLite does not enforce column types, so malformed rows are filtered here.
	rows, err := l.db.QueryContext(ctx, `
		SELECT name, score, date FROM leaderboard
		WHERE typeof(score) = 'integer' AND score >= 0 AND trim(name) <> ''
		ORDER BY score DESC, id ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var (
			name, date string
			score      int
		)
		if err := rows.Scan(&name, &score, &date); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		created, _ := time.Parse(domain.DateLayout, date)
		entries = append(entries, domain.LeaderboardEntry{Name: name, Score: score, CreatedAt: created})
	}
	return entries, rows.Err()
}

func (l *Leaderboard) ensureSchema(ctx context.Context) error {
	columns, err := l.columns(ctx)
	if err != nil {
		return err
	}
	if len(columns) > 0 && strings.Join(columns, ",") != strings.Join(leaderboardColumns, ",") {
		glog.Warningf("leaderboard table has columns %v, recreating", columns)
		if _, err := l.db.ExecContext(ctx, `DROP TABLE leaderboard`); err != nil {
			return fmt.Errorf("drop leaderboard: %w", err)
		}
	}
	if _, err := l.db.ExecContext(ctx, createLeaderboardSQL); err != nil {
		return fmt.Errorf("create leaderboard: %w", err)
	}
	return nil
}

func (l *Leaderboard) columns(ctx context.Context) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('leaderboard') ORDER BY cid`)
	if err != nil {
		return nil, fmt.Errorf("inspect leaderboard: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, strings.ToLower(name))
	}
	return columns, rows.Err()
}
