package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/report"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Role share, role winrates, flexibility and group size",
	Args:  cobra.NoArgs,
	RunE:  runRoles,
}

func init() {
	addRoleFlag(rolesCmd)
}

func runRoles(cmd *cobra.Command, args []string) error {
	v, err := loadView(cmd.Context())
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, aggregator.Summary(v.matches), v.role)
	report.PrintRoles(os.Stdout, aggregator.RoleStats(v.matches), aggregator.GroupSizeWinrates(v.matches))
	return nil
}
