package app_test

import (
	"context"
	"testing"
	"time"

	"countdown-quiz/internal/app"
	"countdown-quiz/internal/clock"
	"countdown-quiz/internal/domain"
	"countdown-quiz/internal/infra/memory"
)

func TestQuizzesShareScoresButNotSessions(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual()
	service := newTestService(clk)

	alice := service.NewQuiz(&recordingDisplay{})
	bob := service.NewQuiz(&recordingDisplay{})

	if err := alice.Start(ctx); err != nil {
		t.Fatalf("start alice: %v", err)
	}
	answerCorrectly(t, alice)
	if bob.Snapshot().Screen != domain.ScreenStart {
		t.Fatalf("bob's quiz must not be affected by alice")
	}

	if err := bob.Start(ctx); err != nil {
		t.Fatalf("start bob: %v", err)
	}
	clk.Advance(time.Minute)

	if _, err := alice.SubmitInitials(ctx, "al"); err != nil {
		t.Fatalf("submit alice: %v", err)
	}
	if _, err := bob.SubmitInitials(ctx, "bo"); err != nil {
		t.Fatalf("submit bob: %v", err)
	}

	records, err := service.Scores().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].Initials != "AL" || records[0].ScorePercent != "100.00" ||
		records[1].Initials != "BO" || records[1].ScorePercent != "0" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestSettingsDefaults(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(
		memory.NewQuestionRepository(memory.NewStaticBankLoader(memory.SampleBanks()), time.Minute),
		app.NewScoreBoard(memory.NewRecordStore(), ""),
		app.Settings{Duration: 30},
		app.WithScheduler(clock.NewManual()),
	)
	quiz := service.NewQuiz(&recordingDisplay{})
	if got := quiz.Snapshot().TimeLeft; got != 30 {
		t.Fatalf("expected configured duration on the start screen, got %d", got)
	}
	if err := quiz.Start(ctx); err != nil {
		t.Fatalf("start with default bank: %v", err)
	}
	answerWrongly(t, quiz)
	if got := quiz.Snapshot().TimeLeft; got != 20 {
		t.Fatalf("expected default 10s penalty, got %d left", got)
	}
}

func newTestService(clk *clock.Manual) *app.QuizService {
	questions := memory.NewQuestionRepository(memory.NewStaticBankLoader(map[string]domain.Bank{
		"default": {
			ID: "default",
			Questions: []domain.Question{
				{Prompt: "Select the right option", Answers: []string{"Wrong", "Right", "Nope", "Never"}, CorrectIndex: 1},
			},
		},
	}), 5*time.Minute)
	return app.NewQuizService(questions, app.NewScoreBoard(memory.NewRecordStore(), ""), app.DefaultSettings(),
		app.WithScheduler(clk), app.WithSeed(1))
}
