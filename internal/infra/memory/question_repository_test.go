package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"sains-quiz-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{QuestionSource: NewStaticQuestionLoader(samplePool())}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.LoadQuestions(context.Background()); err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	questions, err := repo.LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestQuestionRepositoryReloadsAfterExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loader := &countingLoader{QuestionSource: NewStaticQuestionLoader(samplePool())}
	repo := NewQuestionRepository(loader, time.Minute)
	repo.clock = func() time.Time { return now }

	_, _ = repo.LoadQuestions(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = repo.LoadQuestions(context.Background())

	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryWithoutTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	loader := &countingLoader{QuestionSource: NewStaticQuestionLoader(samplePool())}
	repo := NewQuestionRepository(loader, 0)
	repo.clock = func() time.Time { return now }

	_, _ = repo.LoadQuestions(context.Background())
	now = now.Add(24 * time.Hour)
	_, _ = repo.LoadQuestions(context.Background())

	if loader.calls != 1 {
		t.Fatalf("expected a single load, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryDoesNotCacheErrors(t *testing.T) {
	loader := &failingLoader{}
	repo := NewQuestionRepository(loader, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := repo.LoadQuestions(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected every call to reach the source, got %d", loader.calls)
	}
}

type countingLoader struct {
	QuestionSource interface {
		LoadQuestions(ctx context.Context) ([]domain.Question, error)
	}
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.QuestionSource.LoadQuestions(ctx)
}

type failingLoader struct {
	calls int
}

func (l *failingLoader) LoadQuestions(context.Context) ([]domain.Question, error) {
	l.calls++
	return nil, errors.New("source unavailable")
}

func samplePool() []domain.Question {
	return []domain.Question{
		{
			Subject:      domain.SubjectPhysics,
			Prompt:       "What is the SI unit of force?",
			Options:      []string{"Joule", "Newton", "Watt", "Pascal"},
			CorrectIndex: 1,
		},
		{
			Subject:      domain.SubjectChemistry,
			Prompt:       "What is the chemical symbol for sodium?",
			Options:      []string{"So", "Na"},
			CorrectIndex: 1,
		},
	}
}
