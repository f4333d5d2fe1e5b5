package cli

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"countdown-quiz/internal/config"
	"countdown-quiz/internal/transport/console"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs a quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("config %s not found, using defaults", *configPath)
				cfg, err = config.Config{}, nil
			}
			if err != nil {
				return err
			}

			service, cleanup, err := newQuizService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			display := console.NewDisplay(cmd.OutOrStdout())
			quiz := service.NewQuiz(display)
			defer quiz.Close()
			return console.Run(cmd.Context(), quiz, display, os.Stdin)
		},
	}
}
