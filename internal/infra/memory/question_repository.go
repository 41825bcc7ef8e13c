package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/domain"
)

const poolKey = "pool"

// QuestionRepository caches the question pool in process so repeated loads do
// not re-read the source. A ttl <= 0 keeps the first successful load forever.
type QuestionRepository struct {
	source app.QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu     sync.RWMutex
	cached *cachedPool
}

type cachedPool struct {
	questions []domain.Question
	expiresAt time.Time // zero means no expiry
}

func (c *cachedPool) fresh(now time.Time) bool {
	return c != nil && (c.expiresAt.IsZero() || c.expiresAt.After(now))
}

func NewQuestionRepository(source app.QuestionSource, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	r.mu.RLock()
	if r.cached.fresh(r.clock()) {
		questions := r.cached.questions
		r.mu.RUnlock()
		return questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(poolKey, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached.fresh(now) {
			questions := r.cached.questions
			r.mu.RUnlock()
			return questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.source.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		entry := &cachedPool{questions: questions}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			entry.expiresAt = now.Add(ttl)
		}
		r.mu.Lock()
		r.cached = entry
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// StaticQuestionLoader is a simple source backed by a fixed slice (useful for tests/demos).
type StaticQuestionLoader struct {
	questions []domain.Question
}

func NewStaticQuestionLoader(questions []domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	return l.questions, nil
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
