package app

import (
	"math/rand"
	"strings"
	"time"

	"sains-quiz-service/internal/domain"
)

// DefaultSampleSize is the number of questions drawn for a quiz.
const DefaultSampleSize = 10

// State is the phase of a quiz session.
type State int

const (
	StateAwaitingAnswer  State = iota // Current question shown, no answer yet
	StateShowingFeedback              // Answer submitted, waiting for Advance
	StateCompleted                    // Every question answered
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateShowingFeedback:
		return "showing-feedback"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Session is one play-through of a quiz. It is owned by a single caller and
// changes only through SubmitAnswer and Advance.
type Session struct {
	subject         string
	questions       []domain.Question
	current         int
	score           int
	answers         []domain.AnswerRecord
	pendingFeedback bool
}

// StartQuiz draws min(sampleSize, len(filtered)) questions without replacement
// from the questions in pool matching subject. domain.SubjectAll matches every
// question. A sampleSize <= 0 selects DefaultSampleSize and a nil rnd uses a
// time-seeded source.
func StartQuiz(pool []domain.Question, subject string, sampleSize int, rnd *rand.Rand) (*Session, error) {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	filtered := FilterBySubject(pool, subject)
	if len(filtered) == 0 {
		return nil, domain.ErrNoQuestions
	}

	n := sampleSize
	if n > len(filtered) {
		n = len(filtered)
	}
	perm := rnd.Perm(len(filtered))
	questions := make([]domain.Question, n)
	for i := 0; i < n; i++ {
		questions[i] = filtered[perm[i]]
	}

	return &Session{
		subject:   subject,
		questions: questions,
		answers:   make([]domain.AnswerRecord, 0, n),
	}, nil
}

// FilterBySubject returns the questions of pool whose subject matches. The
// pool itself is never modified.
func FilterBySubject(pool []domain.Question, subject string) []domain.Question {
	if subject == domain.SubjectAll {
		return pool
	}
	filtered := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if q.Subject == subject {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// SubmitAnswer scores the selected option against the current question. An
// empty selection returns domain.ErrNoSelection and leaves the session as it
// was. The answer is compared by option text.
func (s *Session) SubmitAnswer(option string) (domain.AnswerRecord, error) {
	if s.IsComplete() {
		return domain.AnswerRecord{}, domain.ErrSessionComplete
	}
	if s.pendingFeedback {
		return domain.AnswerRecord{}, domain.ErrFeedbackPending
	}
	if strings.TrimSpace(option) == "" {
		return domain.AnswerRecord{}, domain.ErrNoSelection
	}

	q := s.questions[s.current]
	correct := q.CorrectOption()
	record := domain.AnswerRecord{
		QuestionPrompt: q.Prompt,
		SelectedOption: option,
		IsCorrect:      option == correct,
		CorrectOption:  correct,
		Explanation:    q.Explanation,
	}
	s.answers = append(s.answers, record)
	if record.IsCorrect {
		s.score++
	}
	s.pendingFeedback = true
	return record, nil
}

// Advance moves past the answered question.
func (s *Session) Advance() error {
	if s.IsComplete() {
		return domain.ErrSessionComplete
	}
	if !s.pendingFeedback {
		return domain.ErrNoPendingAnswer
	}
	s.current++
	s.pendingFeedback = false
	return nil
}

// IsComplete reports whether every question has been answered and advanced past.
func (s *Session) IsComplete() bool {
	return s.current >= len(s.questions)
}

// CurrentQuestion returns the question awaiting an answer or showing feedback.
func (s *Session) CurrentQuestion() (domain.Question, error) {
	if s.IsComplete() {
		return domain.Question{}, domain.ErrSessionComplete
	}
	return s.questions[s.current], nil
}

// LastFeedback returns the answer submitted for the current question, if any.
func (s *Session) LastFeedback() (domain.AnswerRecord, bool) {
	if !s.pendingFeedback {
		return domain.AnswerRecord{}, false
	}
	return s.answers[len(s.answers)-1], true
}

// State reports where the session is in the answer/feedback cycle.
func (s *Session) State() State {
	switch {
	case s.IsComplete():
		return StateCompleted
	case s.pendingFeedback:
		return StateShowingFeedback
	default:
		return StateAwaitingAnswer
	}
}

// Percentage returns 100*score/total once the session is complete.
func (s *Session) Percentage() (float64, error) {
	if len(s.questions) == 0 {
		return 0, domain.ErrNoQuestions
	}
	if !s.IsComplete() {
		return 0, domain.ErrNotComplete
	}
	return 100 * float64(s.score) / float64(len(s.questions)), nil
}

// Answers returns a copy of the answer log.
func (s *Session) Answers() []domain.AnswerRecord {
	out := make([]domain.AnswerRecord, len(s.answers))
	copy(out, s.answers)
	return out
}

// Subject is the subject the session was started with.
func (s *Session) Subject() string { return s.subject }

// Score counts the correct answers so far.
func (s *Session) Score() int { return s.score }

// Total is the number of sampled questions.
func (s *Session) Total() int { return len(s.questions) }

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.current }

// PendingFeedback reports whether the current question has been answered but
// not yet advanced past.
func (s *Session) PendingFeedback() bool { return s.pendingFeedback }
