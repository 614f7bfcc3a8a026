package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var synergyMatrix bool

var synergyCmd = &cobra.Command{
	Use:   "synergy",
	Short: "Best hero per map, ranked by the lower bound of its winrate",
	Args:  cobra.NoArgs,
	RunE:  runSynergy,
}

func init() {
	synergyCmd.Flags().BoolVar(&synergyMatrix, "matrix", false, "also print the full hero x map grid")
	addRoleFlag(synergyCmd)
}

func runSynergy(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	res := aggregator.HeroMapSynergy(v.matches)
	report.PrintSynergy(os.Stdout, res)
	if synergyMatrix {
		report.PrintSynergyMatrix(os.Stdout, res)
	}
	return nil
}
