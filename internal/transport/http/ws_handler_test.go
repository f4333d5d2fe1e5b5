package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"countdown-quiz/internal/app"
	"countdown-quiz/internal/clock"
	"countdown-quiz/internal/domain"
	"countdown-quiz/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketQuizFlow(t *testing.T) {
	clk := clock.NewManual()
	conn := dialTestServer(t, clk)

	readUntil(t, conn, "screen")
	if got := decode[timeLeftPayload](t, readUntil(t, conn, "timeLeft")); got.Seconds != 60 {
		t.Fatalf("expected 60 seconds on the start screen, got %d", got.Seconds)
	}

	send(t, conn, "start", nil)
	question := decode[questionPayload](t, readUntil(t, conn, "question"))
	if question.Prompt != "Pick four" || len(question.Answers) != 4 {
		t.Fatalf("unexpected question %+v", question)
	}
	if screen := decodeScreen(t, readUntil(t, conn, "screen")); screen != "active" {
		t.Fatalf("expected active screen, got %s", screen)
	}

	send(t, conn, "answer", map[string]any{"index": indexOf(question.Answers, "4")})
	question = decode[questionPayload](t, readUntil(t, conn, "question"))
	status := decode[answerStatusPayload](t, readUntil(t, conn, "answerStatus"))
	if status.Text != "Correct!" || !status.Visible {
		t.Fatalf("expected visible Correct!, got %+v", status)
	}

	send(t, conn, "answer", map[string]any{"index": indexOf(question.Answers, "1")})
	if left := decode[timeLeftPayload](t, readUntil(t, conn, "timeLeft")); left.Seconds != 50 {
		t.Fatalf("expected penalty to 50, got %d", left.Seconds)
	}
	status = decode[answerStatusPayload](t, readUntil(t, conn, "answerStatus"))
	if status.Text != "Wrong!" {
		t.Fatalf("expected Wrong!, got %+v", status)
	}

	clk.Advance(50 * time.Second)
	final := decode[finalScorePayload](t, readUntil(t, conn, "finalScore"))
	if final.Percent != "50.00" {
		t.Fatalf("expected 50.00, got %s", final.Percent)
	}
	if screen := decodeScreen(t, readUntil(t, conn, "screen")); screen != "ended" {
		t.Fatalf("expected ended screen, got %s", screen)
	}

	send(t, conn, "submitInitials", map[string]any{"initials": ""})
	errMsg := decode[errorPayload](t, readUntil(t, conn, "error"))
	if errMsg.Message != domain.ErrEmptyInitials.Error() {
		t.Fatalf("expected validation error, got %q", errMsg.Message)
	}

	send(t, conn, "submitInitials", map[string]any{"initials": "ab"})
	scores := decode[highScoresPayload](t, readUntil(t, conn, "highScores"))
	if len(scores.Records) != 1 || scores.Records[0].Initials != "AB" || scores.Records[0].ScorePercent != "50.00" {
		t.Fatalf("unexpected high scores %+v", scores.Records)
	}
	if screen := decodeScreen(t, readUntil(t, conn, "screen")); screen != "start" {
		t.Fatalf("expected start screen, got %s", screen)
	}

	send(t, conn, "clearHighScores", nil)
	if scores := decode[highScoresPayload](t, readUntil(t, conn, "highScores")); len(scores.Records) != 0 {
		t.Fatalf("expected cleared list, got %+v", scores.Records)
	}
	send(t, conn, "closeHighScores", nil)
	readUntil(t, conn, "highScoresHidden")
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	conn := dialTestServer(t, clock.NewManual())

	send(t, conn, "answer", map[string]any{"index": 0})
	if msg := decode[errorPayload](t, readUntil(t, conn, "error")); msg.Message != domain.ErrQuizNotActive.Error() {
		t.Fatalf("expected not-active error, got %q", msg.Message)
	}

	send(t, conn, "start", nil)
	readUntil(t, conn, "question")
	send(t, conn, "answer", map[string]any{})
	if msg := decode[errorPayload](t, readUntil(t, conn, "error")); msg.Message != errInvalidPayload.Error() {
		t.Fatalf("expected invalid payload error, got %q", msg.Message)
	}

	send(t, conn, "dance", nil)
	if msg := decode[errorPayload](t, readUntil(t, conn, "error")); msg.Message != errUnsupportedType.Error() {
		t.Fatalf("expected unsupported type error, got %q", msg.Message)
	}
}

func dialTestServer(t *testing.T, clk *clock.Manual) *websocket.Conn {
	t.Helper()
	questions := memory.NewQuestionRepository(memory.NewStaticBankLoader(map[string]domain.Bank{
		"default": {
			ID: "default",
			Questions: []domain.Question{
				{Prompt: "Pick four", Answers: []string{"1", "2", "3", "4"}, CorrectIndex: 3},
			},
		},
	}), time.Minute)
	service := app.NewQuizService(questions, app.NewScoreBoard(memory.NewRecordStore(), ""),
		app.DefaultSettings(), app.WithScheduler(clk))
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// readUntil skips messages until one of the given type arrives and returns its payload.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) json.RawMessage {
	t.Helper()
	for i := 0; i < 200; i++ {
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json waiting for %s: %v", typ, err)
		}
		if msg.Type == typ {
			return msg.Payload
		}
	}
	t.Fatalf("no %s message", typ)
	return nil
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return out
}

func decodeScreen(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var p struct {
		Screen string `json:"screen"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("decode screen: %v", err)
	}
	return p.Screen
}

func indexOf(answers []string, want string) int {
	for i, a := range answers {
		if a == want {
			return i
		}
	}
	return -1
}
