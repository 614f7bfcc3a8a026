package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/model"
	"github.com/pable/owstats/internal/report"
)

var heroesMode string

var heroesCmd = &cobra.Command{
	Use:   "heroes",
	Short: "Most played heroes, hero winrates, focus and swap impact",
	Args:  cobra.NoArgs,
	RunE:  runHeroes,
}

func init() {
	heroesCmd.Flags().StringVar(&heroesMode, "mode", "", "restrict most-played heroes to one game mode (e.g. Control)")
	addRoleFlag(heroesCmd)
}

func runHeroes(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	mode := model.MapType(heroesMode)
	if mode != "" && !knownMode(v.catalog.MapTypes(), mode) {
		return fmt.Errorf("unknown game mode %q", heroesMode)
	}
	report.PrintSummary(os.Stdout, aggregator.Summary(v.matches), v.role)
	report.PrintHeroes(os.Stdout,
		aggregator.MostPlayedHeroes(v.matches, mode),
		aggregator.HeroWinrates(v.matches),
		aggregator.OneTrick(v.matches),
		aggregator.HeroPoolDiversity(v.matches),
		aggregator.HeroSwap(v.matches),
	)
	return nil
}

func knownMode(modes []model.MapType, m model.MapType) bool {
	for _, x := range modes {
		if x == m {
			return true
		}
	}
	return false
}
