package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/composer"
	"github.com/abhisek/vocabdrill/internal/dataset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "List, check and inspect datasets",
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s  %5s  %9s  %s\n", "Name", "Words", "Sentences", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, name := range dataset.BuiltinNames() {
			ds, err := dataset.Builtin(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-12s  %5d  %9d  %s\n",
				ds.Name, len(ds.Words), len(composer.All(ds)), ds.Description)
		}
		return nil
	},
}

var datasetValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a dataset file and report every problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d words, %d sentences)\n",
			ds.Name, len(ds.Words), len(composer.All(ds)))
		return nil
	},
}

var datasetShowCmd = &cobra.Command{
	Use:   "show [name|file]",
	Short: "Print a dataset's words and composed sentences",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		ds, err := dataset.Resolve(name)
		if err != nil {
			return err
		}

		if xlsxPath != "" {
			if err := dataset.WriteXLSX(ds, xlsxPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxPath)
			return nil
		}

		out := cmd.OutOrStdout()
		if format != "" && format != "text" {
			raw, err := dataset.Encode(ds, format)
			if err != nil {
				return err
			}
			_, err = out.Write(raw)
			return err
		}

		target, base := ds.Languages()
		fmt.Fprintf(out, "%s (%s → %s)\n", ds.Name, target, base)
		if ds.HasWords() {
			fmt.Fprintf(out, "\nWords (%d)\n", len(ds.Words))
			for _, w := range ds.Words {
				fmt.Fprintf(out, "  %-28s  %s\n", w.Target, w.Base)
			}
		}
		if ds.HasSentences() {
			sentences := composer.All(ds)
			fmt.Fprintf(out, "\nSentences (%d)\n", len(sentences))
			for _, s := range sentences {
				fmt.Fprintf(out, "  %s\n    %s\n", s.Target, s.Base)
			}
		}
		return nil
	},
}

func init() {
	datasetShowCmd.Flags().String("format", "text", "Output format: text, json or yaml")
	datasetShowCmd.Flags().String("xlsx", "", "Export the dataset to this .xlsx file instead of printing")

	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetValidateCmd)
	datasetCmd.AddCommand(datasetShowCmd)
}
