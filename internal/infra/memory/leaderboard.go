package memory

import (
	"context"
	"sort"
	"sync"

	"sains-quiz-service/internal/domain"
)

// DefaultLeaderboardCapacity is how many scores the local list keeps.
const DefaultLeaderboardCapacity = 10

// Leaderboard is the local fallback leaderboard: the top scores by score
// descending, ties in insertion order, capped at a fixed size.
type Leaderboard struct {
	mu       sync.RWMutex
	capacity int
	entries  []domain.LeaderboardEntry
}

func NewLeaderboard(capacity int) *Leaderboard {
	if capacity <= 0 {
		capacity = DefaultLeaderboardCapacity
	}
	return &Leaderboard{
		capacity: capacity,
		entries:  make([]domain.LeaderboardEntry, 0, capacity+1),
	}
}

func (l *Leaderboard) Save(_ context.Context, entry domain.LeaderboardEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Score > l.entries[j].Score
	})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	return nil
}

func (l *Leaderboard) LoadTop(_ context.Context, n int) ([]domain.LeaderboardEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]domain.LeaderboardEntry, n)
	copy(out, l.entries[:n])
	return out, nil
}
