package file

import (
	"context"
	"fmt"
	"os"

	"sains-quiz-service/internal/domain"
	"sains-quiz-service/internal/questionbank"
)

// QuestionLoader reads a questions.json document from disk.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

func (l *QuestionLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	questions, err := questionbank.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return questions, nil
}
