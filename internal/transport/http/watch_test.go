package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"team-quiz-service/internal/app"
	"team-quiz-service/internal/infra/memory"
)

func TestWatchStreamsLeaderboard(t *testing.T) {
	store := memory.NewStore()
	results := app.NewResultService(store)
	access := app.NewAccessService(store)
	admin := app.NewAdminService(store, store, store, results)

	server := httptest.NewServer(NewHandler(access, admin, results).Routes())
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/v1/teams/watch"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Initial snapshot arrives first.
	typ, payload := readWatch(t, conn)
	if typ != "leaderboard" {
		t.Fatalf("expected leaderboard, got %s", typ)
	}
	if len(payload) != 0 {
		t.Fatalf("expected empty snapshot, got %d entries", len(payload))
	}

	if _, err := results.Record(context.Background(), "Falcons", "AAAAAA", 4, 5); err != nil {
		t.Fatalf("record: %v", err)
	}

	typ, payload = readWatch(t, conn)
	if typ != "leaderboard" || len(payload) != 1 {
		t.Fatalf("expected 1-entry update, got type=%s entries=%d", typ, len(payload))
	}
	if payload[0]["name"] != "Falcons" {
		t.Fatalf("unexpected entry: %+v", payload[0])
	}

	// A reset pushes a cleared snapshot too.
	if err := admin.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	typ, payload = readWatch(t, conn)
	if typ != "leaderboard" || len(payload) != 0 {
		t.Fatalf("expected cleared snapshot, got type=%s entries=%d", typ, len(payload))
	}
}

func readWatch(t *testing.T, conn *websocket.Conn) (string, []map[string]any) {
	t.Helper()
	var msg struct {
		Type    string           `json:"type"`
		Payload []map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
