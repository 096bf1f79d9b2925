package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent drills and the most-missed items",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		missed, err := repo.MostMissed(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query missed items: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No drills yet.")
			return nil
		}

		fmt.Fprintf(out, "%-17s  %-10s  %-9s  %9s  %8s  %6s  %s\n",
			"When", "Dataset", "Mode", "Questions", "Accuracy", "Rounds", "Done")
		fmt.Fprintln(out, strings.Repeat("─", 78))
		for _, s := range sessions {
			done := "no"
			if s.Completed {
				done = "yes"
			}
			fmt.Fprintf(out, "%-17s  %-10s  %-9s  %9d  %7.0f%%  %6d  %s\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"), s.Dataset, s.Mode,
				s.QuestionsServed, s.Accuracy()*100, s.Rounds, done)
		}

		if len(missed) > 0 {
			fmt.Fprintln(out, "\nMost missed")
			fmt.Fprintln(out, strings.Repeat("─", 78))
			for _, m := range missed {
				fmt.Fprintf(out, "%-50s  %d of %d wrong\n", m.CorrectAnswer, m.Misses, m.Attempts)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of drills and items to show")
}
