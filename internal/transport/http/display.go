package http

import (
	"errors"
	"sync"

	"countdown-quiz/internal/domain"
)

var (
	errInvalidPayload  = errors.New("invalid payload")
	errUnsupportedType = errors.New("unsupported message type")
)

type screenPayload struct {
	Screen domain.Screen `json:"screen"`
}

type questionPayload struct {
	Prompt  string   `json:"prompt"`
	Answers []string `json:"answers"`
}

type timeLeftPayload struct {
	Seconds int `json:"seconds"`
}

type answerStatusPayload struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

type finalScorePayload struct {
	Percent string `json:"percent"`
}

type highScoresPayload struct {
	Records []domain.HighScoreRecord `json:"records"`
}

// wsDisplay turns render calls into outbound messages for the writer goroutine.
type wsDisplay struct {
	mu     sync.Mutex
	send   chan<- outboundMessage
	closed bool
}

func (d *wsDisplay) emit(typ string, payload any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.send <- outboundMessage{Type: typ, Payload: payload}
}

func (d *wsDisplay) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func (d *wsDisplay) RenderScreen(screen domain.Screen) {
	d.emit("screen", screenPayload{Screen: screen})
}

func (d *wsDisplay) RenderQuestion(prompt string, answers []string) {
	d.emit("question", questionPayload{Prompt: prompt, Answers: answers})
}

func (d *wsDisplay) RenderTimeLeft(seconds int) {
	d.emit("timeLeft", timeLeftPayload{Seconds: seconds})
}

func (d *wsDisplay) RenderAnswerStatus(text string, visible bool) {
	d.emit("answerStatus", answerStatusPayload{Text: text, Visible: visible})
}

func (d *wsDisplay) RenderFinalScore(percent string) {
	d.emit("finalScore", finalScorePayload{Percent: percent})
}

func (d *wsDisplay) RenderHighScores(records []domain.HighScoreRecord) {
	if records == nil {
		records = []domain.HighScoreRecord{}
	}
	d.emit("highScores", highScoresPayload{Records: records})
}

func (d *wsDisplay) HideHighScores() {
	d.emit("highScoresHidden", nil)
}
