package app

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/golang/glog"
	"sains-quiz-service/internal/domain"
)

// LeaderboardStore abstracts where saved scores live (Redis, Postgres, SQLite, in-memory).
// A LoadTop error means the backend is unavailable; an empty slice means it is
// reachable but holds no scores. LoadTop with n <= 0 returns every score.
type LeaderboardStore interface {
	Save(ctx context.Context, entry domain.LeaderboardEntry) error
	LoadTop(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

// DefaultTopN is the leaderboard size shown to players.
const DefaultTopN = 10

// SaveResult tells the player where a score ended up.
type SaveResult struct {
	Entry  domain.LeaderboardEntry `json:"entry"`
	Global bool                    `json:"global"`
}

// QuizService contains the quiz use cases around the session engine: starting
// quizzes from the shared pool and saving scores with local fallback.
type QuizService struct {
	source     QuestionSource
	remote     LeaderboardStore
	local      LeaderboardStore
	sampleSize int
	timeout    time.Duration
	now        func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// Option configures a QuizService.
type Option func(*QuizService)

// WithSampleSize sets how many questions a quiz draws.
func WithSampleSize(n int) Option {
	return func(s *QuizService) { s.sampleSize = n }
}

// WithStoreTimeout bounds every remote leaderboard call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *QuizService) { s.timeout = d }
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

// WithRand fixes the sampling source.
func WithRand(rnd *rand.Rand) Option {
	return func(s *QuizService) { s.rnd = rnd }
}

// NewQuizService builds the service. The pool is read from source on every
// Start, so source is expected to cache (see memory.QuestionRepository).
// remote may be nil, in which case every score is kept in local only.
func NewQuizService(source QuestionSource, remote, local LeaderboardStore, opts ...Option) *QuizService {
	s := &QuizService{
		source:     source,
		remote:     remote,
		local:      local,
		sampleSize: DefaultSampleSize,
		timeout:    5 * time.Second,
		now:        time.Now,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subjects lists the subjects a player may pick.
func (s *QuizService) Subjects(ctx context.Context) []string {
	return Subjects(LoadQuestions(ctx, s.source))
}

// Start draws a fresh session from the current pool. Nothing carries over
// from earlier sessions.
func (s *QuizService) Start(ctx context.Context, subject string) (*Session, error) {
	pool := LoadQuestions(ctx, s.source)

	// rand.Rand is not safe for concurrent use; the server starts quizzes from many connections.
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return StartQuiz(pool, subject, s.sampleSize, s.rnd)
}

// SaveScore records a score on the global leaderboard, or on the local list
// when the global one is unavailable. Store failures are never returned.
func (s *QuizService) SaveScore(ctx context.Context, name string, score int) (SaveResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxNameLength {
		return SaveResult{}, domain.ErrInvalidName
	}
	if score < 0 {
		return SaveResult{}, domain.ErrInvalidScore
	}

	entry := domain.LeaderboardEntry{Name: name, Score: score, CreatedAt: s.now().UTC()}
	if s.remote != nil {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.remote.Save(callCtx, entry)
		cancel()
		if err == nil {
			return SaveResult{Entry: entry, Global: true}, nil
		}
		glog.Warningf("save score for %q to leaderboard: %v; saving locally", name, err)
	}

	if err := s.local.Save(ctx, entry); err != nil {
		// The in-memory list does not fail; a custom local store might.
		glog.Errorf("save score for %q locally: %v", name, err)
	}
	return SaveResult{Entry: entry, Global: false}, nil
}

// Leaderboard returns the top n scores and whether they came from the global
// leaderboard. n <= 0 selects DefaultTopN.
func (s *QuizService) Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, bool) {
	if n <= 0 {
		n = DefaultTopN
	}
	if s.remote != nil {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		entries, err := s.remote.LoadTop(callCtx, n)
		cancel()
		if err == nil {
			return entries, true
		}
		glog.Warningf("load leaderboard: %v; showing local scores", err)
	}

	entries, err := s.local.LoadTop(ctx, n)
	if err != nil {
		glog.Errorf("load local leaderboard: %v", err)
		return []domain.LeaderboardEntry{}, false
	}
	return entries, false
}
