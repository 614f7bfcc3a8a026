package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Per-map winrates, tiers, familiarity and learning curve",
	Args:  cobra.NoArgs,
	RunE:  runMaps,
}

func init() {
	addRoleFlag(mapsCmd)
}

func runMaps(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, aggregator.Summary(v.matches), v.role)
	report.PrintMapTable(os.Stdout, aggregator.MapDetailed(v.matches))
	report.PrintFamiliarity(os.Stdout, aggregator.MapFamiliarity(v.matches, v.catalog))
	report.PrintLearningCurve(os.Stdout, aggregator.MapLearningCurve(v.matches))
	report.PrintRepeatMap(os.Stdout, aggregator.RepeatMap(v.matches))
	return nil
}
