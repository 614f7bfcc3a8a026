package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var (
	trendWindow int
	trendForm   int
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Streaks, recent form and rolling winrate",
	Args:  cobra.NoArgs,
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().IntVar(&trendWindow, "window", 0, "rolling window size (default 10)")
	trendCmd.Flags().IntVar(&trendForm, "form", 0, "recent-form sample size (default 20)")
	addRoleFlag(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, aggregator.Summary(v.matches), v.role)
	report.PrintTrend(os.Stdout,
		aggregator.Streaks(v.matches),
		aggregator.RecentForm(v.matches, trendForm),
		aggregator.RollingWinrate(v.matches, trendWindow),
	)
	return nil
}
