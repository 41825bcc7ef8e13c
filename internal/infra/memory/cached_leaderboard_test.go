package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"sains-quiz-service/internal/domain"
)

func TestCachedLeaderboardServesFromCacheWithinTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &countingStore{Leaderboard: NewLeaderboard(10)}
	cached := newCachedLeaderboardWithClock(store, 30*time.Second, func() time.Time { return now })

	_ = store.Leaderboard.Save(ctx, domain.LeaderboardEntry{Name: "Alice", Score: 5})

	if _, err := cached.LoadTop(ctx, 10); err != nil {
		t.Fatalf("load top: %v", err)
	}
	now = now.Add(10 * time.Second)
	if _, err := cached.LoadTop(ctx, 10); err != nil {
		t.Fatalf("load top: %v", err)
	}
	if store.loads != 1 {
		t.Fatalf("expected one backend load, got %d", store.loads)
	}

	now = now.Add(time.Minute)
	if _, err := cached.LoadTop(ctx, 10); err != nil {
		t.Fatalf("load top: %v", err)
	}
	if store.loads != 2 {
		t.Fatalf("expected reload after ttl, got %d loads", store.loads)
	}
}

func TestCachedLeaderboardSaveInvalidates(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Leaderboard: NewLeaderboard(10)}
	cached := NewCachedLeaderboard(store, time.Minute)

	if top, _ := cached.LoadTop(ctx, 10); len(top) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", top)
	}
	if err := cached.Save(ctx, domain.LeaderboardEntry{Name: "Alice", Score: 7}); err != nil {
		t.Fatalf("save: %v", err)
	}
	top, _ := cached.LoadTop(ctx, 10)
	if len(top) != 1 || top[0].Name != "Alice" {
		t.Fatalf("expected fresh entries after save, got %+v", top)
	}
}

func TestCachedLeaderboardPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Leaderboard: NewLeaderboard(10), err: errors.New("backend down")}
	cached := NewCachedLeaderboard(store, time.Minute)

	if _, err := cached.LoadTop(ctx, 10); err == nil {
		t.Fatalf("expected load error")
	}
	if err := cached.Save(ctx, domain.LeaderboardEntry{Name: "Alice", Score: 7}); err == nil {
		t.Fatalf("expected save error")
	}
	if _, err := cached.LoadTop(ctx, 10); err == nil {
		t.Fatalf("expected errors not to be cached")
	}
	if store.loads != 2 {
		t.Fatalf("expected two backend loads, got %d", store.loads)
	}
}

type countingStore struct {
	*Leaderboard
	loads int
	err   error
}

func (s *countingStore) Save(ctx context.Context, entry domain.LeaderboardEntry) error {
	if s.err != nil {
		return s.err
	}
	return s.Leaderboard.Save(ctx, entry)
}

func (s *countingStore) LoadTop(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.Leaderboard.LoadTop(ctx, n)
}
