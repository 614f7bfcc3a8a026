package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Overall record, best map and current streak",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	addRoleFlag(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, aggregator.Summary(v.matches), v.role)
	report.PrintMapWinLoss(os.Stdout, aggregator.MapWinLoss(v.matches))
	return nil
}
