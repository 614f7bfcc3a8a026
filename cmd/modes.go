package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Play share and winrate per game mode",
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

func init() {
	addRoleFlag(modesCmd)
}

func runModes(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintModes(os.Stdout, aggregator.GameModeDistribution(v.matches), aggregator.GameModeWinrates(v.matches))
	return nil
}
