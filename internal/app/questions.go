package app

import (
	"context"
	"sort"

	"github.com/golang/glog"
	"sains-quiz-service/internal/domain"
	"sains-quiz-service/internal/questionbank"
)

// QuestionSource loads the question pool from a backing store (file, database, cache).
type QuestionSource interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// LoadQuestions returns the pool from source, or the built-in set when the
// source is missing, fails or yields nothing. The result is never empty.
func LoadQuestions(ctx context.Context, source QuestionSource) []domain.Question {
	if source == nil {
		glog.Warning("no question source configured, using built-in questions")
		return questionbank.Builtin()
	}
	questions, err := source.LoadQuestions(ctx)
	if err != nil {
		glog.Warningf("load questions: %v; using built-in questions", err)
		return questionbank.Builtin()
	}
	if len(questions) == 0 {
		glog.Warning("question source is empty, using built-in questions")
		return questionbank.Builtin()
	}
	glog.V(2).Infof("loaded %d questions", len(questions))
	return questions
}

// Subjects lists the subject choices for pool: domain.SubjectAll, the known
// subjects, then any other subject present in the pool in name order.
func Subjects(pool []domain.Question) []string {
	subjects := append([]string{domain.SubjectAll}, domain.KnownSubjects...)
	seen := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		seen[s] = true
	}
	var extra []string
	for _, q := range pool {
		if !seen[q.Subject] {
			seen[q.Subject] = true
			extra = append(extra, q.Subject)
		}
	}
	sort.Strings(extra)
	return append(subjects, extra...)
}
