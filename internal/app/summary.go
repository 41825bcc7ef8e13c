package app

import (
	"fmt"
	"net/url"

	"sains-quiz-service/internal/domain"
)

// ShareURL is the public address linked from the share message.
const ShareURL = "https://sainsquiz.streamlit.app"

// Summary is the end-of-quiz result with the answer review.
type Summary struct {
	Subject    string                `json:"subject"`
	Score      int                   `json:"score"`
	Total      int                   `json:"total"`
	Percentage float64               `json:"percentage"`
	Review     []domain.AnswerRecord `json:"review"`
	ShareText  string                `json:"shareText"`
	ShareLink  string                `json:"shareLink"`
}

// Summary returns the final result. It fails until the session is complete.
func (s *Session) Summary() (Summary, error) {
	pct, err := s.Percentage()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Subject:    s.subject,
		Score:      s.score,
		Total:      len(s.questions),
		Percentage: pct,
		Review:     s.Answers(),
		ShareText:  s.ShareText(),
		ShareLink:  s.ShareLink(),
	}, nil
}

// ShareText is the brag message offered after a quiz.
func (s *Session) ShareText() string {
	return fmt.Sprintf("I scored %d/%d on SainsQuiz SPM Science! Can you beat me? %s", s.score, len(s.questions), ShareURL)
}

// ShareLink wraps ShareText in a WhatsApp share URL.
func (s *Session) ShareLink() string {
	return "https://wa.me/?text=" + url.QueryEscape(s.ShareText())
}
