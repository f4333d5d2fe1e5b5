package domain

import "errors"

var (
	// ErrQuizNotActive is returned when an answer arrives outside the active screen.
	ErrQuizNotActive = errors.New("quiz is not active")
	// ErrQuizNotEnded is returned when initials are submitted before the quiz ended.
	ErrQuizNotEnded = errors.New("quiz has not ended")
	// ErrQuizClosed is returned for events on a quiz whose front end went away.
	ErrQuizClosed = errors.New("quiz closed")
	// ErrAnswerOutOfRange indicates a selected answer index the question does not have.
	ErrAnswerOutOfRange = errors.New("answer index out of range")
	// ErrNoQuestions indicates a bank without questions.
	ErrNoQuestions = errors.New("question bank is empty")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidQuestion indicates a malformed question in a bank.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrRecordNotFound is returned by record storage when a named record is absent.
	ErrRecordNotFound = errors.New("record not found")
	// ErrCorruptScores marks stored high scores that could not be decoded.
	ErrCorruptScores = errors.New("stored high scores are corrupt")

	// ErrEmptyInitials is the validation failure for a blank score submission.
	ErrEmptyInitials = ValidationError{Field: "initials", Reason: "must not be empty"}
)

// ValidationError reports user input that must be corrected and resubmitted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
