package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/config"
	"sains-quiz-service/internal/domain"
)

// NewPlayCmd runs one quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			service, cleanup, err := buildService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return runPlay(cmd.Context(), service, subject, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", domain.SubjectAll, "subject to practise (All, Physics, Chemistry, Biology)")
	return cmd
}

// runPlay drives one session from line-based input. End of input ends the
// quiz without saving.
func runPlay(ctx context.Context, service *app.QuizService, subject string, in io.Reader, out io.Writer) error {
	session, err := service.Start(ctx, subject)
	if errors.Is(err, domain.ErrNoQuestions) {
		fmt.Fprintf(out, "No questions for %s yet. Choose one of: %s\n", subject, strings.Join(service.Subjects(ctx), ", "))
		return nil
	}
	if err != nil {
		return err
	}

	lines := bufio.NewScanner(in)
	for !session.IsComplete() {
		q, err := session.CurrentQuestion()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", session.Index()+1, session.Total(), q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		record, ok, err := askAnswer(lines, out, session, q)
		if err != nil || !ok {
			return err
		}
		if record.IsCorrect {
			fmt.Fprintf(out, "Correct! %s\n", record.Explanation)
		} else {
			fmt.Fprintf(out, "Incorrect. The correct answer is: %s. %s\n", record.CorrectOption, record.Explanation)
		}
		fmt.Fprintf(out, "Score: %d\n", session.Score())

		if session.Index()+1 < session.Total() {
			fmt.Fprint(out, "Press Enter for the next question...")
			if !lines.Scan() {
				return lines.Err()
			}
		}
		if err := session.Advance(); err != nil {
			return err
		}
	}

	summary, err := session.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nQuiz Complete! Your final score: %d/%d (%.0f%%)\n", summary.Score, summary.Total, summary.Percentage)
	for i, a := range summary.Review {
		if a.IsCorrect {
			fmt.Fprintf(out, "Q%d: ✅ %s\n", i+1, a.QuestionPrompt)
			continue
		}
		fmt.Fprintf(out, "Q%d: ❌ %s\n    Your answer: %s\n    Correct answer: %s\n    Explanation: %s\n",
			i+1, a.QuestionPrompt, a.SelectedOption, a.CorrectOption, a.Explanation)
	}

	if err := askSave(ctx, lines, out, service, summary.Score); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", summary.ShareText)
	return nil
}

// askAnswer reads until a valid option is submitted. ok is false at end of input.
func askAnswer(lines *bufio.Scanner, out io.Writer, session *app.Session, q domain.Question) (domain.AnswerRecord, bool, error) {
	for {
		fmt.Fprint(out, "Your answer: ")
		if !lines.Scan() {
			return domain.AnswerRecord{}, false, lines.Err()
		}
		option := ""
		if n, err := strconv.Atoi(strings.TrimSpace(lines.Text())); err == nil && n >= 1 && n <= len(q.Options) {
			option = q.Options[n-1]
		}
		record, err := session.SubmitAnswer(option)
		if errors.Is(err, domain.ErrNoSelection) {
			fmt.Fprintf(out, "Please select an answer (1-%d).\n", len(q.Options))
			continue
		}
		return record, err == nil, err
	}
}

func askSave(ctx context.Context, lines *bufio.Scanner, out io.Writer, service *app.QuizService, score int) error {
	for {
		fmt.Fprint(out, "\nEnter your name for the leaderboard (blank to skip): ")
		if !lines.Scan() {
			return lines.Err()
		}
		name := strings.TrimSpace(lines.Text())
		if name == "" {
			return nil
		}
		result, err := service.SaveScore(ctx, name, score)
		if errors.Is(err, domain.ErrInvalidName) {
			fmt.Fprintln(out, err)
			continue
		}
		if err != nil {
			return err
		}
		if result.Global {
			fmt.Fprintln(out, "Score saved!")
		} else {
			fmt.Fprintln(out, "Score saved locally (global leaderboard unavailable).")
		}

		entries, _ := service.Leaderboard(ctx, 5)
		fmt.Fprintln(out, "Top Players")
		for i, e := range entries {
			fmt.Fprintf(out, "%d. %s – %d\n", i+1, e.Name, e.Score)
		}
		return nil
	}
}
