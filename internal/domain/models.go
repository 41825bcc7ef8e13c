package domain

import (
	"fmt"
	"strings"
	"time"
)

// Known subjects. The pool may carry others; SubjectAll disables filtering.
const (
	SubjectAll       = "All"
	SubjectPhysics   = "Physics"
	SubjectChemistry = "Chemistry"
	SubjectBiology   = "Biology"
)

// KnownSubjects lists the subjects offered even when the pool has no questions for them.
var KnownSubjects = []string{SubjectPhysics, SubjectChemistry, SubjectBiology}

// DateLayout is how leaderboard stores render LeaderboardEntry.CreatedAt.
const DateLayout = "2006-01-02 15:04:05"

// MaxNameLength bounds the player name saved to the leaderboard, in runes.
const MaxNameLength = 20

// Question models an MCQ question. CorrectIndex points into Options.
type Question struct {
	Subject      string   `json:"subject"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_option"`
	Explanation  string   `json:"explanation"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	return q.Options[q.CorrectIndex]
}

// Validate checks the record invariants: a prompt, at least two non-blank
// unique options and an in-range correct index.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrMalformedQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %d options", ErrMalformedQuestion, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct option %d out of range", ErrMalformedQuestion, q.CorrectIndex)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: blank option", ErrMalformedQuestion)
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("%w: duplicate option %q", ErrMalformedQuestion, opt)
		}
		seen[opt] = struct{}{}
	}
	return nil
}

// AnswerRecord is the outcome of one submitted answer.
type AnswerRecord struct {
	QuestionPrompt string `json:"question"`
	SelectedOption string `json:"selected"`
	IsCorrect      bool   `json:"correct"`
	CorrectOption  string `json:"correctOption"`
	Explanation    string `json:"explanation"`
}

// LeaderboardEntry is one saved score.
type LeaderboardEntry struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// Date renders CreatedAt the way ledger rows store it.
func (e LeaderboardEntry) Date() string {
	return e.CreatedAt.Format(DateLayout)
}
