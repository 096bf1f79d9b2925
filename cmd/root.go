package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vocabdrill",
	Short: "Terminal vocabulary and sentence drills",
	Long: `vocabdrill is a terminal language drill. Words and composed sentences are
asked as multiple choice first, then typed, until every item is learned.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. An interrupt cancels the command's context
// so a plain-mode drill can stop at a question boundary and log its end.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/vocabdrill/config.yaml)")
	pf.String("db", "", "Path to SQLite answer log (overrides VOCABDRILL_DB env var)")
	pf.Bool("no-history", false, "Do not write the answer log")
	pf.String("dataset", "food", "Built-in dataset name or path to a .json, .yaml or .xlsx file")
	pf.String("mode", "words", "What to drill: words or sentences")
	pf.Int("phases", 2, "Correct answers needed per item: 1 (choice only) or 2 (choice, then typed)")
	pf.String("goal", "mastery", "When a drill ends: mastery or coverage (sentences only)")
	pf.Int("sample", 20, "Sentences per drill, 0 for all")
	pf.Int("choices", 4, "Options per multiple-choice question (2-4)")
	pf.Uint64("seed", 0, "Random seed for reproducible drills, 0 for random")
	pf.Bool("reask-in-round", false, "Ask an item again in the same round after it advances")
	pf.Bool("free-text-first", false, "Single-phase word drills ask for typed answers")
	pf.String("log-file", "", "Write a JSON diagnostic log to this file")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(versionCmd)
}
