package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"sains-quiz-service/internal/app"
	"sains-quiz-service/internal/domain"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Subject string `json:"subject"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type savePayload struct {
	Name string `json:"name"`
}

type startedPayload struct {
	SessionID string `json:"sessionId"`
	Subject   string `json:"subject"`
	Total     int    `json:"total"`
}

type questionPayload struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Subject string   `json:"subject"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Score   int      `json:"score"`
}

type feedbackPayload struct {
	domain.AnswerRecord
	Score int `json:"score"`
	Index int `json:"index"`
	Total int `json:"total"`
}

type leaderboardPayload struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Global  bool                      `json:"global"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// playerConn is one player's connection. Its session is touched only by the
// read loop goroutine.
type playerConn struct {
	conn      *websocket.Conn
	service   *app.QuizService
	sessionID string
	session   *app.Session
	saved     bool
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	p := &playerConn{conn: conn, service: h.service}
	if subject := r.URL.Query().Get("subject"); subject != "" {
		if err := p.start(r.Context(), subject); err != nil {
			return
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := p.handle(r.Context(), inbound); err != nil {
			glog.Warningf("ws write error: %v", err)
			break
		}
	}
	if p.session != nil {
		glog.V(1).Infof("session %s closed at question %d/%d", p.sessionID, p.session.Index(), p.session.Total())
	}
}

func (p *playerConn) handle(ctx context.Context, msg inboundMessage) error {
	switch msg.Type {
	case "start":
		var payload startPayload
		if err := decodePayload(msg.Payload, &payload); err != nil {
			return p.sendError("invalid start payload")
		}
		if payload.Subject == "" {
			payload.Subject = domain.SubjectAll
		}
		return p.start(ctx, payload.Subject)
	case "answer":
		var payload answerPayload
		if err := decodePayload(msg.Payload, &payload); err != nil {
			return p.sendError("invalid answer payload")
		}
		return p.answer(payload.Option)
	case "next":
		return p.next()
	case "save":
		var payload savePayload
		if err := decodePayload(msg.Payload, &payload); err != nil {
			return p.sendError("invalid save payload")
		}
		return p.save(ctx, payload.Name)
	case "leaderboard":
		entries, global := p.service.Leaderboard(ctx, app.DefaultTopN)
		return p.send("leaderboard", leaderboardPayload{Entries: entries, Global: global})
	default:
		return p.sendError("unsupported message type")
	}
}

func (p *playerConn) start(ctx context.Context, subject string) error {
	session, err := p.service.Start(ctx, subject)
	if errors.Is(err, domain.ErrNoQuestions) {
		return p.sendWarning(err.Error())
	}
	if err != nil {
		return p.sendError(err.Error())
	}

	// the previous session, if any, is dropped entirely
	p.session = session
	p.sessionID = uuid.NewString()
	p.saved = false
	glog.V(1).Infof("session %s started: subject=%s questions=%d", p.sessionID, subject, session.Total())

	if err := p.send("started", startedPayload{SessionID: p.sessionID, Subject: subject, Total: session.Total()}); err != nil {
		return err
	}
	return p.sendQuestion()
}

func (p *playerConn) answer(option string) error {
	if p.session == nil {
		return p.sendError("no quiz in progress")
	}
	record, err := p.session.SubmitAnswer(option)
	if errors.Is(err, domain.ErrNoSelection) {
		return p.sendWarning(err.Error())
	}
	if err != nil {
		return p.sendError(err.Error())
	}
	return p.send("feedback", feedbackPayload{
		AnswerRecord: record,
		Score:        p.session.Score(),
		Index:        p.session.Index(),
		Total:        p.session.Total(),
	})
}

func (p *playerConn) next() error {
	if p.session == nil {
		return p.sendError("no quiz in progress")
	}
	if err := p.session.Advance(); err != nil {
		return p.sendError(err.Error())
	}
	if !p.session.IsComplete() {
		return p.sendQuestion()
	}
	summary, err := p.session.Summary()
	if err != nil {
		return p.sendError(err.Error())
	}
	glog.V(1).Infof("session %s complete: %d/%d", p.sessionID, summary.Score, summary.Total)
	return p.send("complete", summary)
}

func (p *playerConn) save(ctx context.Context, name string) error {
	if p.session == nil || !p.session.IsComplete() {
		return p.sendError("quiz not complete")
	}
	if p.saved {
		return p.sendWarning("score already saved")
	}
	result, err := p.service.SaveScore(ctx, name, p.session.Score())
	if err != nil {
		return p.sendWarning(err.Error())
	}
	p.saved = true
	return p.send("saved", result)
}

func (p *playerConn) sendQuestion() error {
	q, err := p.session.CurrentQuestion()
	if err != nil {
		return p.sendError(err.Error())
	}
	return p.send("question", questionPayload{
		Index:   p.session.Index(),
		Total:   p.session.Total(),
		Subject: q.Subject,
		Prompt:  q.Prompt,
		Options: q.Options,
		Score:   p.session.Score(),
	})
}

func (p *playerConn) send(typ string, payload any) error {
	return p.conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload})
}

func (p *playerConn) sendWarning(message string) error {
	return p.send("warning", errorPayload{Message: message})
}

func (p *playerConn) sendError(message string) error {
	return p.send("error", errorPayload{Message: message})
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
