package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"team-quiz-service/internal/app"
)

// WatchHandler streams leaderboard snapshots over a websocket so the
// operator view does not have to poll after every submission.
type WatchHandler struct {
	results  *app.ResultService
	upgrader websocket.Upgrader
}

func NewWatchHandler(results *app.ResultService) *WatchHandler {
	return &WatchHandler{
		results: results,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type watchMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ServeWatch upgrades the request and pushes the current leaderboard plus
// every subsequent change until the client disconnects.
func (h *WatchHandler) ServeWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("watch upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.results.Subscribe(r.Context())
	if err != nil {
		_ = conn.WriteJSON(watchMessage{Type: "error", Payload: errorResponse{Error: err.Error()}})
		return
	}
	defer cancel()

	// Drain the read side so close frames are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case lb, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(watchMessage{Type: "leaderboard", Payload: lb}); err != nil {
				slog.Error("watch write failed", "error", err)
				return
			}
		}
	}
}
