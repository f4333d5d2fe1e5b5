package domain

import (
	"fmt"
	"math"
	"strconv"
)

// AnswersPerQuestion is the fixed number of choices every question carries.
const AnswersPerQuestion = 4

// Screen is one of the mutually exclusive UI states of a quiz.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenActive
	ScreenEnded
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenActive:
		return "active"
	case ScreenEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MarshalText lets screens travel as their names in JSON payloads.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Question is a multiple-choice question from a bank. Banks are shared and must
// never be mutated; use Round to get a private copy.
type Question struct {
	Prompt       string   `json:"prompt" yaml:"prompt"`
	Answers      []string `json:"answers" yaml:"answers"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex"`
}

// Validate checks the shape of a question.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Answers) != AnswersPerQuestion {
		return fmt.Errorf("%w: %q has %d answers, want %d", ErrInvalidQuestion, q.Prompt, len(q.Answers), AnswersPerQuestion)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Answers) {
		return fmt.Errorf("%w: %q correct index %d out of range", ErrInvalidQuestion, q.Prompt, q.CorrectIndex)
	}
	return nil
}

// Round returns an independent copy of the question for one round of play.
func (q Question) Round() RoundQuestion {
	answers := make([]string, len(q.Answers))
	copy(answers, q.Answers)
	return RoundQuestion{
		Prompt:       q.Prompt,
		Answers:      answers,
		CorrectIndex: q.CorrectIndex,
	}
}

// RoundQuestion is the per-round view of a question after its answers were shuffled.
type RoundQuestion struct {
	Prompt       string
	Answers      []string
	CorrectIndex int
}

// Bank is a named master list of questions.
type Bank struct {
	ID        string     `json:"id" yaml:"id"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Validate checks every question of the bank.
func (b Bank) Validate() error {
	for i, q := range b.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("bank %s question %d: %w", b.ID, i, err)
		}
	}
	return nil
}

// Session is the mutable state of one quiz round.
type Session struct {
	Score             int    `json:"score"`
	QuestionsAnswered int    `json:"questionsAnswered"`
	TimeLeft          int    `json:"timeLeft"`
	Screen            Screen `json:"screen"`
	FinalPercent      string `json:"finalPercent,omitempty"`
}

// HighScoreRecord is one saved result. The JSON layout is the persisted one.
type HighScoreRecord struct {
	Initials     string `json:"initials"`
	ScorePercent string `json:"score"`
}

// ScorePercent returns the share of correct answers as a percentage with two
// decimals, or "0" when nothing was answered. Ties round half up.
func ScorePercent(score, answered int) string {
	if answered == 0 {
		return "0"
	}
	hundredths := math.Round(float64(score) * 10000 / float64(answered))
	return strconv.FormatFloat(hundredths/100, 'f', 2, 64)
}
