package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/domain"
)

// QuestionRepository caches the question pool in Redis as one JSON blob and
// falls back to the wrapped source on a miss. The pool is shared by every
// instance reading from the same Redis.
//
//	SET questions:{bankID} <json array> EX <ttl>
type QuestionRepository struct {
	client *redis.Client
	source app.QuestionSource
	bankID string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client *redis.Client, source app.QuestionSource, bankID string, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		source: source,
		bankID: bankID,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := r.cached(ctx); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(r.key(), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := r.cached(ctx); ok {
			return questions, nil
		}

		questions, err := r.source.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, err
		}
		// best-effort fill; a Redis outage must not hide a good pool
		if err := r.client.Set(ctx, r.key(), data, r.ttlWithJitter()).Err(); err != nil {
			glog.Warningf("cache question pool in redis: %v", err)
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) cached(ctx context.Context) ([]domain.Question, bool) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if err != nil {
		if err != redis.Nil {
			glog.V(1).Infof("read cached question pool: %v", err)
		}
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

func (r *QuestionRepository) key() string {
	return "questions:" + r.bankID
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
