package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"sains-quiz-service/internal/app"
)

// RESTHandler serves the read-only HTTP endpoints.
type RESTHandler struct {
	service *app.QuizService
}

func NewRESTHandler(service *app.QuizService) *RESTHandler {
	return &RESTHandler{service: service}
}

// Register mounts the endpoints on mux.
func (h *RESTHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/subjects", h.Subjects)
	mux.HandleFunc("/leaderboard", h.Leaderboard)
}

func (h *RESTHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (h *RESTHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string][]string{"subjects": h.service.Subjects(r.Context())})
}

func (h *RESTHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	n := app.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			http.Error(w, "n must be between 1 and 100", http.StatusBadRequest)
			return
		}
		n = parsed
	}
	entries, global := h.service.Leaderboard(r.Context(), n)
	writeJSON(w, leaderboardPayload{Entries: entries, Global: global})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("write response: %v", err)
	}
}
