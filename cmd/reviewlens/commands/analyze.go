package commands

import (
	"github.com/spacesedan/reviewlens/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <product-url>",
	Short: "Analyzes the reviews on one Amazon or Flipkart product page and prints the results.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, cleanup, err := buildAnalyzer(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		task := analyzer.Submit(cmd.Context(), args[0])
		outcome := <-task.Done()
		if outcome.Err != nil {
			cmd.SilenceUsage = true
			return outcome.Err
		}

		report.Table(cmd.OutOrStdout(), outcome.Result)
		return nil
	},
}
