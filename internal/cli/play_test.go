package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/domain"
	"sains-quiz-service/internal/infra/memory"
)

func TestRunPlayFullQuiz(t *testing.T) {
	local := memory.NewLeaderboard(10)
	service := app.NewQuizService(memory.NewStaticQuestionLoader(playPool()), nil, local)

	// invalid input, right answer, enter, wrong answer, too-long name, name
	input := strings.Join([]string{
		"9",
		"2",
		"",
		"1",
		strings.Repeat("x", 25),
		"Alice",
	}, "\n") + "\n"
	var out bytes.Buffer
	if err := runPlay(context.Background(), service, domain.SubjectPhysics, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run play: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Please select an answer (1-2).",
		"Quiz Complete! Your final score: 1/2 (50%)",
		domain.ErrInvalidName.Error(),
		"Score saved locally",
		"1. Alice – 1",
		"I scored 1/2",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}

	top, _ := local.LoadTop(context.Background(), 10)
	if len(top) != 1 || top[0].Name != "Alice" || top[0].Score != 1 {
		t.Fatalf("expected Alice saved with 1, got %+v", top)
	}
}

func TestRunPlayUnknownSubject(t *testing.T) {
	service := app.NewQuizService(memory.NewStaticQuestionLoader(playPool()), nil, memory.NewLeaderboard(10))
	var out bytes.Buffer
	if err := runPlay(context.Background(), service, domain.SubjectBiology, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run play: %v", err)
	}
	if !strings.Contains(out.String(), "No questions for Biology") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunPlayStopsAtEndOfInput(t *testing.T) {
	service := app.NewQuizService(memory.NewStaticQuestionLoader(playPool()), nil, memory.NewLeaderboard(10))
	var out bytes.Buffer
	if err := runPlay(context.Background(), service, domain.SubjectPhysics, strings.NewReader("1\n"), &out); err != nil {
		t.Fatalf("run play: %v", err)
	}
	if strings.Contains(out.String(), "Quiz Complete") {
		t.Fatalf("expected quiz to stop early, got %q", out.String())
	}
}

// playPool has two physics questions whose correct answer is the second option,
// so any draw order gives the same result for the same keystrokes.
func playPool() []domain.Question {
	return []domain.Question{
		{
			Subject:      domain.SubjectPhysics,
			Prompt:       "What is the SI unit of force?",
			Options:      []string{"Joule", "Newton"},
			CorrectIndex: 1,
			Explanation:  "Force is measured in newtons.",
		},
		{
			Subject:      domain.SubjectPhysics,
			Prompt:       "Which quantity is a vector?",
			Options:      []string{"Speed", "Velocity"},
			CorrectIndex: 1,
			Explanation:  "Velocity has direction.",
		},
	}
}
