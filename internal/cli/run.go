package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

var runK int

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Align, generate, rank and report a window in one go",
	Long: `Run executes every stage over the window in order. Meetings that fail to
align and rows that fail to generate are reported and skipped; a failed
tournament stops the run.

Example:
  meetsum run --start 20250505 --end 20250509 --k 10`,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addWindowFlags(runCmd)
	runCmd.Flags().IntVar(&runK, "k", 0, "top-k report size (0 skips the report)")
}

func runAll(cmd *cobra.Command, args []string) error {
	return withApp(cmd, stageNeeds{generator: true, judge: true}, func(ctx context.Context, a *app, w model.Window) error {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  meetsum %s\n", w.Key())
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n")

		out, err := a.pipeline.Run(ctx, w, runK)
		if out.Align != nil {
			printAlign(out.Align)
		}
		if out.Generate != nil {
			printGenerate(out.Generate)
		}
		if err != nil {
			return err
		}
		if err := printRank(out.Rank); err != nil {
			return err
		}
		if out.Report != "" {
			fmt.Fprintf(os.Stderr, "✓ Report written: %s\n", out.Report)
		}
		return nil
	})
}
