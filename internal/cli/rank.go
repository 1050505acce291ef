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

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank every headline in the window with a pairwise tournament",
	Long: `Rank plays every pair of distinct headlines in the window once, asking the
language model which of the two is more important, and folds each verdict
into a skill rating.

Writes <start>_<end>_ranking.csv and <start>_<end>_labels.json. Any judge
failure or off-protocol reply aborts the run and nothing is written.

Example:
  meetsum rank --start 20250505 --end 20250509
  meetsum rank --start 20250505 --end 20250509 --seed 42 --tie-break deviation`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	addWindowFlags(rankCmd)
	rankCmd.Flags().Duration("delay", 0, "pause between judge calls (default from config)")
	rankCmd.Flags().Int64("seed", 0, "seed for pair orientation (0 seeds from the clock)")
	rankCmd.Flags().String("tie-break", "", "order of equal means: discovery or deviation")
	_ = viper.BindPFlag("tournament.delay", rankCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag("tournament.seed", rankCmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("tournament.tie_break", rankCmd.Flags().Lookup("tie-break"))
}

func runRank(cmd *cobra.Command, args []string) error {
	return withApp(cmd, stageNeeds{judge: true}, func(ctx context.Context, a *app, w model.Window) error {
		summary, err := a.pipeline.RankWindow(ctx, w)
		if err != nil {
			return fmt.Errorf("rank failed: %w", err)
		}
		return printRank(summary)
	})
}

func printRank(summary *pipeline.RankSummary) error {
	fmt.Fprintf(os.Stderr, "\n✓ Ranked %d headlines (%d collected, %d comparisons)\n", summary.Pool, summary.Headlines, summary.Comparisons)
	if summary.RunID != "" {
		fmt.Fprintf(os.Stderr, "✓ Ledger run %s\n", summary.RunID)
	}
	fmt.Fprintln(os.Stderr)
	return pipeline.NewRenderer(80).RenderRanking(os.Stdout, summary.Rows)
}
