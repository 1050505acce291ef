package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
	"github.com/Cmaury/Meeting-Summary-Automation/internal/publish"
)

var topK int

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the top-k headlines and summaries of a ranked window",
	Long: `Report reads the window's ranking and label map and writes
<start>_<end>_final_<k>.txt with the k best headlines and their summaries.

Example:
  meetsum report --start 20250505 --end 20250509 --k 10`,
	RunE: runReport,
}

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload a window's ranking, label map and reports to S3",
	Long: `Publish uploads the window's artifacts to the configured bucket under
<prefix>/<start>_<end>/. Credentials come from the usual AWS sources.

Example:
  MEETSUM_PUBLISH_BUCKET=newsroom-data meetsum publish --start 20250505 --end 20250509`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addWindowFlags(reportCmd)
	reportCmd.Flags().IntVar(&topK, "k", 10, "number of headlines in the report")

	rootCmd.AddCommand(publishCmd)
	addWindowFlags(publishCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, stageNeeds{}, func(ctx context.Context, a *app, w model.Window) error {
		path, err := a.pipeline.Report(w, topK)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Report written: %s\n", path)
		return nil
	})
}

func runPublish(cmd *cobra.Command, args []string) error {
	return withApp(cmd, stageNeeds{}, func(ctx context.Context, a *app, w model.Window) error {
		pub, err := publish.NewFromConfig(ctx, a.cfg.Publish)
		if err != nil {
			return err
		}
		uploads, err := a.pipeline.Publish(ctx, w, pub)
		for _, u := range uploads {
			fmt.Fprintf(os.Stderr, "✓ s3://%s/%s\n", a.cfg.Publish.Bucket, u.Key)
		}
		return err
	})
}
