package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"sains-quiz-service/internal/domain"
	"sains-quiz-service/internal/questionbank"
)

// QuestionLoader loads a question bank JSONB document from Postgres.
type QuestionLoader struct {
	pool   *pgxpool.Pool
	bankID string
}

func NewQuestionLoader(pool *pgxpool.Pool, bankID string) *QuestionLoader {
	return &QuestionLoader{pool: pool, bankID: bankID}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE id=$1`, l.bankID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load question bank %q: %w", l.bankID, err)
	}
	questions, err := questionbank.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("question bank %q: %w", l.bankID, err)
	}
	return questions, nil
}
