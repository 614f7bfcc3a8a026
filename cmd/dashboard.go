package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/owstats/internal/dashboard"
	"github.com/pable/owstats/internal/report"
)

var dashboardJSON bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Every analysis at once, as tables or JSON",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "print the full result set as JSON")
	addRoleFlag(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	d, err := buildDashboard(cmd.Context(), dashboard.Options{})
	if err != nil {
		return err
	}
	if dashboardJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	printDashboard(d)
	return nil
}

func printDashboard(d *dashboard.Dashboard) {
	w := os.Stdout
	report.PrintSummary(w, d.Summary, d.Role)
	report.PrintMapTable(w, d.MapDetailed)
	report.PrintFamiliarity(w, d.MapFamiliarity)
	report.PrintLearningCurve(w, d.MapLearningCurve)
	report.PrintTimeline(w, d.MapTimeline)
	report.PrintRepeatMap(w, d.RepeatMap)
	report.PrintModes(w, d.ModeDistribution, d.ModeWinrates)
	report.PrintHeroes(w, d.MostPlayed, d.HeroWinrates, d.OneTrick, d.HeroPool, d.HeroSwap)
	report.PrintSynergy(w, d.Synergy)
	report.PrintRoles(w, d.Roles, d.GroupSizes)
	report.PrintTrend(w, d.Streaks, d.RecentForm, d.Rolling)
	report.PrintSessions(w, d.Sessions)
	report.PrintHeatmap(w, d.Heatmap)
	report.PrintDayOfWeek(w, d.DayOfWeek)
}
