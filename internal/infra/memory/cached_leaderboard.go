package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/singleflight"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/domain"
)

// DefaultLeaderboardTTL is how long a LoadTop result is served from cache.
const DefaultLeaderboardTTL = 30 * time.Second

// CachedLeaderboard caches LoadTop results of a backing store for a short TTL so
// page refreshes do not hit the backend every time. Failures are not cached and
// a successful Save drops the cache.
type CachedLeaderboard struct {
	store app.LeaderboardStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu    sync.RWMutex
	cache map[int]cachedTop
}

type cachedTop struct {
	entries   []domain.LeaderboardEntry
	expiresAt time.Time
}

func NewCachedLeaderboard(store app.LeaderboardStore, ttl time.Duration) *CachedLeaderboard {
	return newCachedLeaderboardWithClock(store, ttl, time.Now)
}

func newCachedLeaderboardWithClock(store app.LeaderboardStore, ttl time.Duration, clock func() time.Time) *CachedLeaderboard {
	return &CachedLeaderboard{
		store: store,
		ttl:   ttl,
		clock: clock,
		cache: make(map[int]cachedTop),
	}
}

func (c *CachedLeaderboard) Save(ctx context.Context, entry domain.LeaderboardEntry) error {
	if err := c.store.Save(ctx, entry); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache = make(map[int]cachedTop)
	c.mu.Unlock()
	return nil
}

func (c *CachedLeaderboard) LoadTop(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	if entries, ok := c.lookup(n); ok {
		return entries, nil
	}

	result, err, _ := c.sf.Do(strconv.Itoa(n), func() (interface{}, error) {
		if entries, ok := c.lookup(n); ok {
			return entries, nil
		}
		entries, err := c.store.LoadTop(ctx, n)
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.cache[n] = cachedTop{entries: entries, expiresAt: c.clock().Add(c.ttl)}
			c.mu.Unlock()
		}
		glog.V(1).Infof("leaderboard cache refreshed for top %d (%d entries)", n, len(entries))
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return copyEntries(result.([]domain.LeaderboardEntry)), nil
}

func (c *CachedLeaderboard) lookup(n int) ([]domain.LeaderboardEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[n]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	return copyEntries(entry.entries), true
}

func copyEntries(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(entries))
	copy(out, entries)
	return out
}
