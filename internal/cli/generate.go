package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/pipeline"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a headline and summary for every combined segment",
	Long: `Generate asks the language model for a one-sentence headline per combined
segment, then a bullet summary focused on that headline.

Rows are saved as soon as they are generated. A row whose generation fails
stays at the combined stage and is retried by the next run.

Example:
  meetsum generate --start 20250505 --end 20250509
  meetsum generate --start 20250505 --end 20250509 --delay 2s`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addWindowFlags(generateCmd)
	generateCmd.Flags().Duration("delay", 0, "pause between generation calls (default from config)")
	_ = viper.BindPFlag("generation.delay", generateCmd.Flags().Lookup("delay"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withApp(cmd, stageNeeds{generator: true}, func(ctx context.Context, a *app, w model.Window) error {
		summary, err := a.pipeline.GenerateWindow(ctx, w)
		if summary != nil {
			printGenerate(summary)
		}
		return err
	})
}

func printGenerate(summary *pipeline.GenerateSummary) {
	for _, o := range summary.Meetings {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.Stem, o.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d segments)\n", o.Stem, o.Segments)
	}
	fmt.Fprintf(os.Stderr, "\n  Generated: %d   Already done: %d   No transcript: %d   Failed: %d\n\n",
		summary.Generated, summary.Skipped, summary.Excluded, summary.Failed)
}
