package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sains-quiz-service/internal/domain"
)

func TestLeaderboardSortsAndCaps(t *testing.T) {
	ctx := context.Background()
	lb := NewLeaderboard(10)

	for i := 0; i < 12; i++ {
		entry := domain.LeaderboardEntry{Name: fmt.Sprintf("p%d", i), Score: i % 5}
		if err := lb.Save(ctx, entry); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	top, err := lb.LoadTop(ctx, 0)
	if err != nil {
		t.Fatalf("load top: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Score < top[i].Score {
			t.Fatalf("entries not sorted descending at %d: %+v", i, top)
		}
	}
}

func TestLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	lb := NewLeaderboard(10)

	_ = lb.Save(ctx, domain.LeaderboardEntry{Name: "Alice", Score: 7})
	_ = lb.Save(ctx, domain.LeaderboardEntry{Name: "Bob", Score: 9})
	_ = lb.Save(ctx, domain.LeaderboardEntry{Name: "Cara", Score: 7})

	top, _ := lb.LoadTop(ctx, 3)
	got := []string{top[0].Name, top[1].Name, top[2].Name}
	want := []string{"Bob", "Alice", "Cara"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestLeaderboardLoadTopLimits(t *testing.T) {
	ctx := context.Background()
	lb := NewLeaderboard(10)

	empty, err := lb.LoadTop(ctx, 5)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil result, got %v, %v", empty, err)
	}

	for i := 0; i < 4; i++ {
		_ = lb.Save(ctx, domain.LeaderboardEntry{Name: "p", Score: i, CreatedAt: time.Now()})
	}
	top, _ := lb.LoadTop(ctx, 2)
	if len(top) != 2 || top[0].Score != 3 || top[1].Score != 2 {
		t.Fatalf("unexpected top 2: %+v", top)
	}
}
