package app

import (
	"context"
	"math/rand"
	"sync"

	"countdown-quiz/internal/clock"
	"countdown-quiz/internal/domain"
)

const (
	statusCorrect = "Correct!"
	statusWrong   = "Wrong!"
)

// Quiz is the state machine behind one player's screen. Every event and every
// timer callback runs under mu, one at a time.
type Quiz struct {
	questions QuestionRepository
	scores    *ScoreBoard
	settings  Settings
	scheduler clock.Scheduler
	display   Display

	mu      sync.Mutex
	rnd     *rand.Rand
	closed  bool
	bank    domain.Bank
	current domain.RoundQuestion
	session domain.Session

	ticker     clock.Task
	tickerGen  uint64
	status     clock.Task
	statusGen  uint64
	statusText string
}

// Start begins a new round from the start or ended screen. Restarting while
// active is allowed and discards the running round.
func (q *Quiz) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.ErrQuizClosed
	}

	bank, err := q.questions.GetBank(ctx, q.settings.BankID)
	if err != nil {
		return err
	}
	if len(bank.Questions) == 0 {
		return domain.ErrNoQuestions
	}

	q.stopTickerLocked()
	q.stopStatusLocked()

	q.bank = bank
	q.session = domain.Session{
		TimeLeft: q.settings.Duration,
		Screen:   domain.ScreenActive,
	}
	q.nextQuestionLocked()
	q.display.RenderAnswerStatus(q.statusText, false)
	q.display.RenderTimeLeft(q.session.TimeLeft)
	q.display.RenderScreen(domain.ScreenActive)
	q.startTickerLocked()
	return nil
}

// Answer scores the selected answer of the current question. A wrong answer
// costs the penalty, which may end the quiz.
func (q *Quiz) Answer(_ context.Context, index int) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false, domain.ErrQuizClosed
	}
	if q.session.Screen != domain.ScreenActive {
		return false, domain.ErrQuizNotActive
	}
	if index < 0 || index >= len(q.current.Answers) {
		return false, domain.ErrAnswerOutOfRange
	}

	q.session.QuestionsAnswered++
	correct := index == q.current.CorrectIndex
	status := statusCorrect
	if correct {
		q.session.Score++
	} else {
		status = statusWrong
		q.deductLocked(q.settings.Penalty)
	}

	if q.session.Screen == domain.ScreenActive {
		q.nextQuestionLocked()
	}
	q.showStatusLocked(status)
	return correct, nil
}

// SubmitInitials saves the final score of an ended quiz and returns to the
// start screen. Validation errors leave the quiz on the ended screen.
func (q *Quiz) SubmitInitials(ctx context.Context, initials string) (domain.HighScoreRecord, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.HighScoreRecord{}, domain.ErrQuizClosed
	}
	if q.session.Screen != domain.ScreenEnded {
		return domain.HighScoreRecord{}, domain.ErrQuizNotEnded
	}

	record, err := q.scores.Append(ctx, initials, q.session.FinalPercent)
	if err != nil {
		return domain.HighScoreRecord{}, err
	}
	if err := q.showHighScoresLocked(ctx); err != nil {
		return record, err
	}
	q.session.Screen = domain.ScreenStart
	q.display.RenderScreen(domain.ScreenStart)
	return record, nil
}

// ShowHighScores renders the saved scores.
func (q *Quiz) ShowHighScores(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.ErrQuizClosed
	}
	return q.showHighScoresLocked(ctx)
}

// ClearHighScores deletes the saved scores and renders the empty list.
func (q *Quiz) ClearHighScores(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.ErrQuizClosed
	}
	if err := q.scores.Clear(ctx); err != nil {
		return err
	}
	q.display.RenderHighScores([]domain.HighScoreRecord{})
	return nil
}

// CloseHighScores hides the score list.
func (q *Quiz) CloseHighScores() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.ErrQuizClosed
	}
	q.display.HideHighScores()
	return nil
}

// Close cancels pending timers. The quiz rejects every later event.
func (q *Quiz) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopTickerLocked()
	q.stopStatusLocked()
	q.closed = true
}

// Snapshot returns a copy of the session state.
func (q *Quiz) Snapshot() domain.Session {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.session
}

// Current returns a copy of the question on screen.
func (q *Quiz) Current() domain.RoundQuestion {
	q.mu.Lock()
	defer q.mu.Unlock()
	answers := make([]string, len(q.current.Answers))
	copy(answers, q.current.Answers)
	return domain.RoundQuestion{
		Prompt:       q.current.Prompt,
		Answers:      answers,
		CorrectIndex: q.current.CorrectIndex,
	}
}

func (q *Quiz) showHighScoresLocked(ctx context.Context) error {
	records, err := q.scores.List(ctx)
	if err != nil {
		return err
	}
	q.display.RenderHighScores(records)
	return nil
}

func (q *Quiz) nextQuestionLocked() {
	picked := q.bank.Questions[q.rnd.Intn(len(q.bank.Questions))]
	round := picked.Round()
	round.Answers, round.CorrectIndex = Shuffle(round.Answers, round.CorrectIndex, q.rnd)
	q.current = round
	q.display.RenderQuestion(round.Prompt, round.Answers)
}

// deductLocked is the single path for ticks and penalties. Reaching zero ends
// the quiz; time left never goes negative.
func (q *Quiz) deductLocked(seconds int) {
	if q.session.Screen != domain.ScreenActive {
		return
	}
	if q.session.TimeLeft-seconds <= 0 {
		q.stopTickerLocked()
		q.session.TimeLeft = 0
		q.session.Screen = domain.ScreenEnded
		q.session.FinalPercent = domain.ScorePercent(q.session.Score, q.session.QuestionsAnswered)
		q.display.RenderTimeLeft(0)
		q.display.RenderFinalScore(q.session.FinalPercent)
		q.display.RenderScreen(domain.ScreenEnded)
		return
	}
	q.session.TimeLeft -= seconds
	q.display.RenderTimeLeft(q.session.TimeLeft)
}

func (q *Quiz) tick(gen uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || gen != q.tickerGen {
		return
	}
	q.deductLocked(1)
}

func (q *Quiz) startTickerLocked() {
	q.stopTickerLocked()
	gen := q.tickerGen
	q.ticker = q.scheduler.Every(q.settings.TickInterval, func() { q.tick(gen) })
}

// stopTickerLocked also bumps the generation so a tick already waiting on mu
// is dropped.
func (q *Quiz) stopTickerLocked() {
	if q.ticker != nil {
		q.ticker.Stop()
		q.ticker = nil
	}
	q.tickerGen++
}

func (q *Quiz) showStatusLocked(text string) {
	q.stopStatusLocked()
	q.statusText = text
	q.display.RenderAnswerStatus(text, true)
	gen := q.statusGen
	q.status = q.scheduler.After(q.settings.StatusDelay, func() { q.hideStatus(gen) })
}

func (q *Quiz) hideStatus(gen uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || gen != q.statusGen {
		return
	}
	q.status = nil
	q.display.RenderAnswerStatus(q.statusText, false)
}

func (q *Quiz) stopStatusLocked() {
	if q.status != nil {
		q.status.Stop()
		q.status = nil
	}
	q.statusGen++
}
