package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"countdown-quiz/internal/app"
	"countdown-quiz/internal/domain"
	"github.com/gorilla/websocket"
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

type answerPayload struct {
	Index *int `json:"index"`
}

type initialsPayload struct {
	Initials string `json:"initials"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and runs one quiz per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage, 32)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so emitters never block on a dead connection
				for range send {
				}
				return
			}
		}
	}()

	display := &wsDisplay{send: send}
	quiz := h.service.NewQuiz(display)

	display.emit("screen", screenPayload{Screen: domain.ScreenStart})
	display.emit("timeLeft", timeLeftPayload{Seconds: quiz.Snapshot().TimeLeft})

	ctx := r.Context()
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(ctx, quiz, inbound); err != nil {
			display.emit("error", errorPayload{Message: err.Error()})
		}
	}

	quiz.Close()
	display.close()
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, quiz *app.Quiz, inbound inboundMessage) error {
	switch inbound.Type {
	case "start":
		return quiz.Start(ctx)
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Index == nil {
			return errInvalidPayload
		}
		_, err := quiz.Answer(ctx, *payload.Index)
		return err
	case "submitInitials":
		var payload initialsPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		_, err := quiz.SubmitInitials(ctx, payload.Initials)
		return err
	case "showHighScores":
		return quiz.ShowHighScores(ctx)
	case "clearHighScores":
		return quiz.ClearHighScores(ctx)
	case "closeHighScores":
		return quiz.CloseHighScores()
	default:
		return errUnsupportedType
	}
}
