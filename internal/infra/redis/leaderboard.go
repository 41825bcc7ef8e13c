package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
	"sains-quiz-service/internal/domain"
)

// ledgerHeader is the column layout of every row in the ledger.
const ledgerHeader = "Name,Score,Date"

// Leaderboard is an append-only ledger of score rows in a Redis list:
//
//	GET   leaderboard:{name}:header   -> "Name,Score,Date"
//	RPUSH leaderboard:{name}:rows     {"Name":..,"Score":..,"Date":..}
//
// When the header is missing or different the ledger is reset before use.
type Leaderboard struct {
	client *redis.Client
	name   string
}

type ledgerRow struct {
	Name  string      `json:"Name"`
	Score json.Number `json:"Score"`
	Date  string      `json:"Date"`
}

func NewLeaderboard(client *redis.Client, name string) *Leaderboard {
	return &Leaderboard{client: client, name: name}
}

func (l *Leaderboard) Save(ctx context.Context, entry domain.LeaderboardEntry) error {
	if err := l.ensureHeader(ctx); err != nil {
		return err
	}
	data, err := json.Marshal(ledgerRow{
		Name:  entry.Name,
		Score: json.Number(fmt.Sprint(entry.Score)),
		Date:  entry.Date(),
	})
	if err != nil {
		return err
	}
	if err := l.client.RPush(ctx, l.rowsKey(), data).Err(); err != nil {
		return fmt.Errorf("append leaderboard row: %w", err)
	}
	return nil
}

func (l *Leaderboard) LoadTop(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if err := l.ensureHeader(ctx); err != nil {
		return nil, err
	}
	raw, err := l.client.LRange(ctx, l.rowsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard rows: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for i, item := range raw {
		entry, ok := parseRow(item)
		if !ok {
			glog.V(1).Infof("skipping malformed leaderboard row %d", i)
			continue
		}
		entries = append(entries, entry)
	}

	// list order is insertion order, so a stable sort keeps ties first-come
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

func (l *Leaderboard) ensureHeader(ctx context.Context) error {
	header, err := l.client.Get(ctx, l.headerKey()).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("read leaderboard header: %w", err)
	}
	if header == ledgerHeader {
		return nil
	}

	glog.Warningf("leaderboard %q has header %q, resetting ledger", l.name, header)
	pipe := l.client.TxPipeline()
	pipe.Del(ctx, l.rowsKey())
	pipe.Set(ctx, l.headerKey(), ledgerHeader, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

func parseRow(item string) (domain.LeaderboardEntry, bool) {
	var row ledgerRow
	if err := json.Unmarshal([]byte(item), &row); err != nil {
		return domain.LeaderboardEntry{}, false
	}
	score, err := row.Score.Int64()
	name := strings.TrimSpace(row.Name)
	if err != nil || score < 0 || name == "" {
		return domain.LeaderboardEntry{}, false
	}
	created, _ := time.Parse(domain.DateLayout, row.Date)
	return domain.LeaderboardEntry{Name: name, Score: int(score), CreatedAt: created}, true
}

func (l *Leaderboard) headerKey() string {
	return "leaderboard:" + l.name + ":header"
}

func (l *Leaderboard) rowsKey() string {
	return "leaderboard:" + l.name + ":rows"
}
