package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var activityWeeks int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Activity heatmap and winrate by day of week",
	Args:  cobra.NoArgs,
	RunE:  runActivity,
}

func init() {
	activityCmd.Flags().IntVar(&activityWeeks, "weeks", 0, "weeks shown in the heatmap (default 16)")
	addRoleFlag(activityCmd)
}

func runActivity(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintHeatmap(os.Stdout, aggregator.ActivityHeatmap(v.matches, activityWeeks, now()))
	report.PrintDayOfWeek(os.Stdout, aggregator.DayOfWeek(v.matches))
	return nil
}
