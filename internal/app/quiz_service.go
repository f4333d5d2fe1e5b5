package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"countdown-quiz/internal/clock"
	"countdown-quiz/internal/domain"
)

// QuestionRepository loads question banks (from cache/backing store).
type QuestionRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// Settings holds the quiz rules.
type Settings struct {
	BankID       string
	Duration     int // seconds on the clock at start
	Penalty      int // seconds lost per wrong answer
	TickInterval time.Duration
	StatusDelay  time.Duration
}

// DefaultSettings returns the standard 60 second quiz with a 10 second penalty.
func DefaultSettings() Settings {
	return Settings{
		BankID:       "default",
		Duration:     60,
		Penalty:      10,
		TickInterval: time.Second,
		StatusDelay:  time.Second,
	}
}

// QuizService wires shared dependencies into per-player quizzes.
type QuizService struct {
	questions QuestionRepository
	scores    *ScoreBoard
	settings  Settings
	scheduler clock.Scheduler

	seedMu sync.Mutex
	seeds  *rand.Rand
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithScheduler replaces the wall clock, typically with clock.Manual in tests.
func WithScheduler(s clock.Scheduler) Option {
	return func(svc *QuizService) { svc.scheduler = s }
}

// WithSeed makes question selection and shuffling deterministic.
func WithSeed(seed int64) Option {
	return func(svc *QuizService) { svc.seeds = rand.New(rand.NewSource(seed)) }
}

func NewQuizService(questions QuestionRepository, scores *ScoreBoard, settings Settings, opts ...Option) *QuizService {
	svc := &QuizService{
		questions: questions,
		scores:    scores,
		settings:  settings.withDefaults(),
		scheduler: clock.Real{},
		seeds:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Scores exposes the shared score board.
func (s *QuizService) Scores() *ScoreBoard {
	return s.scores
}

// NewQuiz creates a quiz on the start screen that renders to display.
func (s *QuizService) NewQuiz(display Display) *Quiz {
	s.seedMu.Lock()
	seed := s.seeds.Int63()
	s.seedMu.Unlock()

	return &Quiz{
		questions: s.questions,
		scores:    s.scores,
		settings:  s.settings,
		scheduler: s.scheduler,
		display:   display,
		rnd:       rand.New(rand.NewSource(seed)),
		session: domain.Session{
			TimeLeft: s.settings.Duration,
			Screen:   domain.ScreenStart,
		},
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.BankID == "" {
		s.BankID = def.BankID
	}
	if s.Duration <= 0 {
		s.Duration = def.Duration
	}
	if s.Penalty <= 0 {
		s.Penalty = def.Penalty
	}
	if s.TickInterval <= 0 {
		s.TickInterval = def.TickInterval
	}
	if s.StatusDelay <= 0 {
		s.StatusDelay = def.StatusDelay
	}
	return s
}
