package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedQuestion marks a question record that breaks the record invariants.
	ErrMalformedQuestion = errors.New("malformed question")
	// ErrNoQuestions is returned when the filtered pool is empty.
	ErrNoQuestions = errors.New("no questions available for this subject")
	// ErrNoSelection is returned when an answer is submitted without an option.
	ErrNoSelection = errors.New("please select an answer")
	// ErrInvalidName is returned when a leaderboard name is empty or too long.
	ErrInvalidName = errors.New("please enter a name of at most 20 characters")
	// ErrInvalidScore is returned when a negative score is saved.
	ErrInvalidScore = errors.New("score must not be negative")
	// ErrNotComplete is returned when a result is requested before the last question.
	ErrNotComplete = errors.New("quiz not complete")

	// ErrInvalidTransition is the parent of every illegal state change on a session.
	ErrInvalidTransition = errors.New("invalid quiz transition")
	// ErrFeedbackPending indicates an answer was already submitted for the current question.
	ErrFeedbackPending = fmt.Errorf("%w: answer already submitted", ErrInvalidTransition)
	// ErrNoPendingAnswer indicates an advance without a submitted answer.
	ErrNoPendingAnswer = fmt.Errorf("%w: no answer submitted", ErrInvalidTransition)
	// ErrSessionComplete indicates the session has no questions left.
	ErrSessionComplete = fmt.Errorf("%w: quiz already complete", ErrInvalidTransition)
)
