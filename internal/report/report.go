// Package report renders analyzer results as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/model"
)

// newTable returns a table with right-aligned cells and centred headers.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
}

func insight(w io.Writer, text string) {
	if text != "" {
		fmt.Fprintf(w, "  > %s\n", text)
	}
}

func pct(v int) string { return strconv.Itoa(v) + "%" }

func pctf(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "%" }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// sequence renders results as "W L D".
func sequence(results []model.Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Short()
	}
	return strings.Join(parts, " ")
}

// PrintSummary prints the one-line header shown above every analysis.
func PrintSummary(w io.Writer, s aggregator.SummaryStats, role model.Role) {
	view := "all roles"
	if role != "" && role != model.RoleAll {
		view = string(role)
	}
	streak := "-"
	if s.StreakType != "none" && s.CurrentStreak > 0 {
		streak = fmt.Sprintf("%d%s", s.CurrentStreak, model.Result(s.StreakType).Short())
	}
	fmt.Fprintf(w, "\nMatches: %d (%dW %dL %dD)  |  Winrate: %d%%  |  Maps: %d  |  Best map: %s  |  Streak: %s  |  View: %s\n",
		s.TotalMatches, s.Wins, s.Losses, s.Draws, s.Winrate, s.UniqueMaps,
		bestMap(s), streak, view)
}

func bestMap(s aggregator.SummaryStats) string {
	if s.BestMap == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%d%%)", s.BestMap, s.BestMapWinrate)
}

// PrintMatchList prints stored matches, newest first.
func PrintMatchList(w io.Writer, matches []model.MatchRecord) {
	table := newTable(w)
	table.Header("ID", "PLAYED", "MAP", "MODE", "RESULT", "GROUP", "HEROES")
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		heroes := make([]string, len(m.Heroes))
		for j, h := range m.Heroes {
			heroes[j] = fmt.Sprintf("%s %d%%", h.Hero, h.Percentage)
		}
		table.Append(
			m.ID,
			m.PlayedAt.Format("2006-01-02 15:04"),
			m.Map,
			string(m.MapType),
			string(m.Result),
			aggregator.GroupSizeLabel(m.GroupSize),
			strings.Join(heroes, ", "),
		)
	}
	table.Render()
}

// PrintRows prints a raw query result.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	table.Header(toAny(cols)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
}
