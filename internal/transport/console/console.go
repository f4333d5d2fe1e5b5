package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"countdown-quiz/internal/app"
	"countdown-quiz/internal/domain"
)

const help = "commands: s start | 1-4 answer | i <initials> save score | h scores | c clear scores | x close scores | q quit"

// Display prints quiz state as plain lines. Writes are serialized because
// timer callbacks render from their own goroutine.
type Display struct {
	mu  sync.Mutex
	out io.Writer
}

func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

func (d *Display) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format+"\n", args...)
}

func (d *Display) RenderScreen(screen domain.Screen) {
	switch screen {
	case domain.ScreenStart:
		d.printf("== start == (%s)", help)
	case domain.ScreenActive:
		d.printf("== quiz started ==")
	case domain.ScreenEnded:
		d.printf("== time is up == enter: i <initials>")
	}
}

func (d *Display) RenderQuestion(prompt string, answers []string) {
	var b strings.Builder
	b.WriteString(prompt)
	for i, a := range answers {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, a)
	}
	d.printf("%s", b.String())
}

func (d *Display) RenderTimeLeft(seconds int) {
	d.printf("time left: %ds", seconds)
}

func (d *Display) RenderAnswerStatus(text string, visible bool) {
	if visible && text != "" {
		d.printf(">> %s", text)
	}
}

func (d *Display) RenderFinalScore(percent string) {
	d.printf("final score: %s%%", percent)
}

func (d *Display) RenderHighScores(records []domain.HighScoreRecord) {
	if len(records) == 0 {
		d.printf("high scores: none")
		return
	}
	var b strings.Builder
	b.WriteString("high scores:")
	for _, r := range records {
		fmt.Fprintf(&b, "\n  %s - %s", r.Initials, r.ScorePercent)
	}
	d.printf("%s", b.String())
}

func (d *Display) HideHighScores() {
	d.printf("high scores closed")
}

// Run feeds commands read line by line from in into quiz until q, EOF or ctx ends.
func Run(ctx context.Context, quiz *app.Quiz, display *Display, in io.Reader) error {
	display.RenderScreen(domain.ScreenStart)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			quit, err := dispatch(ctx, quiz, strings.TrimSpace(line))
			if err != nil {
				display.printf("error: %v", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func dispatch(ctx context.Context, quiz *app.Quiz, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "":
		return false, nil
	case "q":
		return true, nil
	case "s":
		return false, quiz.Start(ctx)
	case "i":
		_, err := quiz.SubmitInitials(ctx, arg)
		return false, err
	case "h":
		return false, quiz.ShowHighScores(ctx)
	case "c":
		return false, quiz.ClearHighScores(ctx)
	case "x":
		return false, quiz.CloseHighScores()
	}

	n, err := strconv.Atoi(cmd)
	if err != nil {
		return false, fmt.Errorf("unknown command %q (%s)", line, help)
	}
	_, err = quiz.Answer(ctx, n-1)
	return false, err
}
