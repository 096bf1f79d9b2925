package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/console"
	"github.com/abhisek/vocabdrill/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a drill",
	Long: `Start a drill straight away. With --plain the drill runs as plain
terminal lines instead of the full-screen interface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.cfg.Plain {
			return runTUI(cmd, e)
		}

		s, err := e.newSession()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		presenter := console.NewPresenter(out, console.WithPause(e.cfg.Pause))
		input := console.NewInput(cmd.InOrStdin(), out)
		defer input.Close()

		sum, err := quiz.Run(cmd.Context(), s, presenter, input)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "\nDrill stopped.")
			presenter.ShowComplete(sum)
			return nil
		}
		return err
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Line-oriented console instead of the full-screen UI")
	playCmd.Flags().Duration("pause", 0, "Pause after each answer in --plain mode")
}
