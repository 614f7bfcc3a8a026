package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Per-map result history, recency and rotation gap",
	Args:  cobra.NoArgs,
	RunE:  runTimeline,
}

func init() {
	addRoleFlag(timelineCmd)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintTimeline(os.Stdout, aggregator.MapTimeline(v.matches, now()))
	return nil
}
