package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/report"
)

var weeklyJSON bool

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Activity across all users over the last seven days",
	Args:  cobra.NoArgs,
	RunE:  runWeekly,
}

func init() {
	weeklyCmd.Flags().BoolVar(&weeklyJSON, "json", false, "print as JSON")
}

func runWeekly(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	end := now()
	week := 7 * 24 * time.Hour
	o, err := db.WeeklyOverview(ctx, end.Add(-week), end.Add(-2*week))
	if err != nil {
		return fmt.Errorf("weekly overview: %w", err)
	}
	if weeklyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}
	report.PrintWeekly(os.Stdout, o)
	return nil
}
