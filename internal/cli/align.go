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

// alignCmd represents the align command
var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Attach legislation and transcript passages to agenda segments",
	Long: `Align builds the combined record for every meeting in the window:
- Match legislation items to the agenda segments that mention them
- Assign labeled transcript passages to segments by agenda ordinal
- Combine agenda, legislation and transcript text per segment

Meetings are processed in parallel. A meeting whose transcript cannot be
aligned is reported and left unwritten; the others continue.

Example:
  meetsum align --start 20250505 --end 20250509
  meetsum align --start 20250505 --end 20250509 --workers 4`,
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)
	addWindowFlags(alignCmd)
	alignCmd.Flags().Int("workers", 0, "number of meetings aligned in parallel (default: number of CPUs)")
	_ = viper.BindPFlag("concurrency.workers", alignCmd.Flags().Lookup("workers"))
}

func runAlign(cmd *cobra.Command, args []string) error {
	return withApp(cmd, stageNeeds{}, func(ctx context.Context, a *app, w model.Window) error {
		summary, err := a.pipeline.AlignWindow(ctx, w)
		if summary != nil {
			printAlign(summary)
		}
		if err != nil {
			return err
		}
		return alignFailures(summary)
	})
}

func printAlign(summary *pipeline.AlignSummary) {
	for _, o := range summary.Meetings {
		switch {
		case o.Err != nil:
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.Stem, o.Err)
		case o.Skipped:
			fmt.Fprintf(os.Stderr, "· %s: already aligned\n", o.Stem)
		default:
			fmt.Fprintf(os.Stderr, "✓ %s (%d segments)\n", o.Stem, o.Segments)
		}
	}
	fmt.Fprintf(os.Stderr, "\n  Meetings: %d   Failed: %d\n\n", len(summary.Meetings), summary.Failed)
}

func alignFailures(summary *pipeline.AlignSummary) error {
	if summary.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d meetings failed to align", summary.Failed, len(summary.Meetings))
}
