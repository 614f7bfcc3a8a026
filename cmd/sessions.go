package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Play sessions (3h+ gaps split them) and their winrates",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	addRoleFlag(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintSessions(os.Stdout, aggregator.Sessions(v.matches))
	return nil
}
