package app

import "countdown-quiz/internal/domain"

// Display renders quiz state for one player. Calls for a quiz are serialized
// and arrive in event order; implementations must not call back into the quiz.
type Display interface {
	RenderScreen(screen domain.Screen)
	RenderQuestion(prompt string, answers []string)
	RenderTimeLeft(seconds int)
	RenderAnswerStatus(text string, visible bool)
	RenderFinalScore(percent string)
	RenderHighScores(records []domain.HighScoreRecord)
	HideHighScores()
}
