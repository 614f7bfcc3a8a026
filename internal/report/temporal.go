package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/storage"
)

// PrintTrend prints streaks, recent form and the rolling winrate series.
func PrintTrend(w io.Writer, streaks aggregator.StreakResult, form aggregator.RecentFormResult, rolling aggregator.RollingResult) {
	section(w, "Streaks")
	current := "-"
	if streaks.CurrentStreakType != "none" {
		current = fmt.Sprintf("%d %s", streaks.CurrentStreak, streaks.CurrentStreakType)
	}
	fmt.Fprintf(w, "Current: %s  |  Longest win: %d  |  Longest loss: %d\n",
		current, streaks.LongestWinStreak, streaks.LongestLossStreak)
	recent := make([]string, len(streaks.RecentResults))
	for i, r := range streaks.RecentResults {
		recent[i] = r.Result.Short()
	}
	if len(recent) > 0 {
		fmt.Fprintf(w, "Recent (newest first): %s\n", strings.Join(recent, " "))
	}

	section(w, "Recent form")
	fmt.Fprintf(w, "Last %d: %d%%  |  Overall: %d%% over %d  |  Delta: %+d (%s)\n",
		form.Recent.Total, form.Recent.Winrate, form.Overall.Winrate, form.Overall.Total, form.Delta, form.Trend)

	section(w, fmt.Sprintf("Rolling winrate (window %d)", rolling.Insight.Window))
	if len(rolling.Data) == 0 {
		fmt.Fprintln(w, "No matches tracked yet.")
		return
	}
	table := newTable(w)
	table.Header("GAME", "DATE", "RESULT", "ROLLING", "")
	for _, p := range rolling.Data {
		table.Append(strconv.Itoa(p.GameIndex), p.Date, p.Result.Short(), pct(p.RollingWinrate), bar(p.RollingWinrate, 20))
	}
	table.Render()
	insight(w, fmt.Sprintf("Trend %s, peak %d%%, now %d%%", rolling.Insight.Trend, rolling.Insight.PeakWinrate, rolling.Insight.CurrentWinrate))
}

// bar draws v (0–100) as a bar of width cells.
func bar(v, width int) string {
	n := v * width / 100
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}

// PrintSessions prints each play session and the best/worst summary.
func PrintSessions(w io.Writer, r aggregator.SessionsResult) {
	section(w, "Sessions")
	if len(r.Sessions) == 0 {
		insight(w, r.Insight)
		return
	}
	table := newTable(w)
	table.Header("#", "START", "GAMES", "W", "L", "D", "WR%", "LENGTH")
	for _, s := range r.Sessions {
		length := "-"
		if s.DurationMinutes != nil {
			length = fmt.Sprintf("%dm", *s.DurationMinutes)
		}
		table.Append(strconv.Itoa(s.SessionIndex), s.StartedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(s.GamesPlayed), strconv.Itoa(s.Wins), strconv.Itoa(s.Losses), strconv.Itoa(s.Draws),
			pct(s.Winrate), length)
	}
	table.Render()
	fmt.Fprintf(w, "Average: %d%% winrate, %s games per session\n",
		r.AvgSessionWinrate, strconv.FormatFloat(r.AvgGamesPerSession, 'f', -1, 64))
	if r.BestSession != nil && r.WorstSession != nil {
		insight(w, fmt.Sprintf("Best session #%d (%d%%), worst #%d (%d%%)",
			r.BestSession.SessionIndex, r.BestSession.Winrate, r.WorstSession.SessionIndex, r.WorstSession.Winrate))
	}
	insight(w, r.Insight)
}

// PrintDayOfWeek prints winrate per weekday.
func PrintDayOfWeek(w io.Writer, r aggregator.DayOfWeekResult) {
	section(w, "Day of week")
	table := newTable(w)
	table.Header("DAY", "W", "L", "D", "GAMES", "WR%")
	for _, d := range r.Data {
		wr := "-"
		if d.Total > 0 {
			wr = pct(d.Winrate)
		}
		table.Append(d.Day, strconv.Itoa(d.Wins), strconv.Itoa(d.Losses), strconv.Itoa(d.Draws), strconv.Itoa(d.Total), wr)
	}
	table.Render()
	fmt.Fprintf(w, "Weekdays: %d%%  |  Weekends: %d%%\n", r.WeekdayWinrate, r.WeekendWinrate)
	insight(w, r.Insight)
}

var heatGlyphs = []string{" ", ".", ":", "o", "#"}

// PrintHeatmap prints the activity grid: one row per weekday (Sunday
// first), one column per week, oldest week on the left.
func PrintHeatmap(w io.Writer, r aggregator.HeatmapResult) {
	section(w, "Activity")
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if len(r.Data)%7 != 0 || len(r.Data) == 0 {
		return
	}
	weeks := len(r.Data) / 7
	// The grid ends on a Sunday, so each week column runs Monday..Sunday.
	for row := 0; row < 7; row++ {
		var sb strings.Builder
		for week := 0; week < weeks; week++ {
			day := r.Data[week*7+(row+6)%7]
			sb.WriteString(glyph(day.Density))
		}
		fmt.Fprintf(w, "%s %s\n", days[row], sb.String())
	}
	fmt.Fprintf(w, "Most active day: %s  |  Active days: %d  |  Games per active day: %s\n",
		orDash(r.Insight.PeakDayOfWeek), r.Insight.TotalActiveDays,
		strconv.FormatFloat(r.Insight.AvgGamesPerActiveDay, 'f', -1, 64))
}

func glyph(density float64) string {
	if density <= 0 {
		return heatGlyphs[0]
	}
	i := int(density*float64(len(heatGlyphs)-1) + 0.999)
	if i >= len(heatGlyphs) {
		i = len(heatGlyphs) - 1
	}
	return heatGlyphs[i]
}

// PrintWeekly prints the cross-user activity digest.
func PrintWeekly(w io.Writer, o *storage.WeeklyOverview) {
	fmt.Fprintf(w, "\nWeekly overview: %s to %s\n", o.Since.Format("Jan 2, 2006"), o.Until.Format("Jan 2, 2006"))
	fmt.Fprintf(w, "Matches logged: %d (previous week %d)  |  Active users: %d of %d  |  All-time matches: %d\n",
		o.MatchesThisWeek, o.MatchesLastWeek, o.ActiveUsersWeek, o.TotalUsers, o.TotalMatchesEver)

	counts := func(title string, rows []storage.NamedCount) {
		section(w, title)
		if len(rows) == 0 {
			fmt.Fprintln(w, "(none)")
			return
		}
		table := newTable(w)
		table.Header("#", "NAME", "COUNT")
		for i, r := range rows {
			table.Append(strconv.Itoa(i+1), r.Name, strconv.Itoa(r.Count))
		}
		table.Render()
	}
	counts("Top heroes (all time)", o.TopHeroes)
	counts("Top maps (this week)", o.TopMaps)
	counts("Top users (all time)", o.TopUsers)
}
