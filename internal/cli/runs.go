package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/ledger"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded tournament runs for a window",
	Long: `Runs lists every tournament recorded in the comparison ledger for the
window, newest first, with how many of its comparisons were recorded.

Example:
  meetsum runs --start 20250505 --end 20250509`,
	RunE: runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	addWindowFlags(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	w, err := parseWindow()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Ledger.Enabled {
		return fmt.Errorf("ledger is disabled (set ledger.enabled)")
	}

	l, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return err
	}
	defer func() { _ = l.Close() }()

	runs, err := l.Runs(cmd.Context(), w.Key())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(os.Stderr, "No runs recorded for %s\n", w.Key())
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Run", "Judge", "Items", "Compared", "Status", "Started", "Error"})
	for _, r := range runs {
		tw.AppendRow(table.Row{
			r.ID,
			r.Judge,
			strconv.Itoa(r.Items),
			fmt.Sprintf("%d/%d", r.Recorded, r.Pairs),
			r.Status,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Error,
		})
	}
	fmt.Println(tw.Render())
	return nil
}
