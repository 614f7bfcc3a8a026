package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pable/owstats/internal/aggregator"
)

// PrintMapTable prints per-map records with tier, volatility and a 95%
// Wilson interval on the winrate.
func PrintMapTable(w io.Writer, r aggregator.MapDetailedResult) {
	section(w, "Maps")
	if len(r.Data) == 0 {
		fmt.Fprintln(w, "No matches tracked yet.")
		return
	}
	table := newTable(w)
	table.Header("MAP", "MODE", "W", "L", "D", "GAMES", "WR%", "VS_AVG", "95% CI", "TIER", "VOL", "CONF")
	for _, e := range r.Data {
		lo, hi := aggregator.WilsonInterval(e.Wins, e.Total)
		tier := e.Tier
		if !e.HasEnoughData {
			tier += "?"
		}
		table.Append(
			e.Name,
			string(e.MapType),
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Losses),
			strconv.Itoa(e.Draws),
			strconv.Itoa(e.Total),
			pct(e.Winrate),
			fmt.Sprintf("%+d", e.Deviation),
			fmt.Sprintf("%d-%d", lo, hi),
			tier,
			strconv.Itoa(e.Volatility),
			strings.Repeat("*", e.ConfidenceStars),
		)
	}
	table.Render()
	fmt.Fprintf(w, "Overall winrate: %d%%\n", r.OverallWinrate)
	ins := r.Insight
	if ins.BestMap != "" {
		insight(w, fmt.Sprintf("Best map: %s (%d%%), worst map: %s (%d%%)", ins.BestMap, ins.BestWinrate, ins.WorstMap, ins.WorstWinrate))
	}
	if ins.MostVolatile != "" {
		insight(w, "Most volatile: "+ins.MostVolatile)
	}
}

// PrintMapWinLoss prints the compact win/loss bars.
func PrintMapWinLoss(w io.Writer, r aggregator.MapWinLossResult) {
	section(w, "Map win/loss")
	table := newTable(w)
	table.Header("MAP", "W", "L", "")
	for _, e := range r.Data {
		table.Append(e.Name, strconv.Itoa(e.Wins), strconv.Itoa(e.Losses),
			strings.Repeat("+", e.Wins)+strings.Repeat("-", e.Losses))
	}
	table.Render()
}

// PrintFamiliarity prints play counts against the catalog.
func PrintFamiliarity(w io.Writer, r aggregator.MapFamiliarityResult) {
	section(w, "Map familiarity")
	fmt.Fprintf(w, "Played %d of %d maps  |  Variety score: %d/100\n", r.TotalMapsPlayed, r.TotalMapsAvailable, r.VarietyScore)
	if len(r.Data) > 0 {
		table := newTable(w)
		table.Header("MAP", "MODE", "GAMES", "SHARE", "LAST 5")
		for _, e := range r.Data {
			table.Append(e.Name, string(e.MapType), strconv.Itoa(e.GamesPlayed), pct(e.PctOfTotal), sequence(e.LastResults))
		}
		table.Render()
	}
	if len(r.AvoidedMaps) > 0 {
		insight(w, "Never played: "+strings.Join(r.AvoidedMaps, ", "))
	}
}

// PrintLearningCurve prints early-vs-late winrates per map.
func PrintLearningCurve(w io.Writer, r aggregator.LearningCurveResult) {
	section(w, "Learning curve")
	table := newTable(w)
	table.Header("MAP", "GAMES", "EARLY", "EARLY_WR", "LATE", "LATE_WR", "CHANGE")
	for _, e := range r.Data {
		change := fmt.Sprintf("%+d", e.Improvement)
		if !e.HasEnoughData {
			change += "?"
		}
		table.Append(e.Map, strconv.Itoa(e.Total),
			strconv.Itoa(e.EarlyGames), pct(e.EarlyWinrate),
			strconv.Itoa(e.LateGames), pct(e.LateWinrate), change)
	}
	table.Render()
	if r.Insight.MostImproved != "" {
		insight(w, fmt.Sprintf("Most improved: %s (%+d)", r.Insight.MostImproved, r.Insight.ImprovementDelta))
	}
	if r.Insight.MostDeclined != "" {
		insight(w, fmt.Sprintf("Most declined: %s (%+d)", r.Insight.MostDeclined, r.Insight.DeclineDelta))
	}
}

// PrintTimeline prints recency and rotation per map.
func PrintTimeline(w io.Writer, r aggregator.MapTimelineResult) {
	section(w, "Map timeline")
	table := newTable(w)
	table.Header("MAP", "GAMES", "LAST_PLAYED", "AVG_GAP", "HISTORY")
	for _, e := range r.Maps {
		gap := "-"
		if e.RotationGapDays != nil {
			gap = strconv.FormatFloat(*e.RotationGapDays, 'f', -1, 64) + "d"
		}
		results := make([]string, len(e.History))
		for i, p := range e.History {
			results[i] = p.Result.Short()
		}
		table.Append(e.Map, strconv.Itoa(e.TotalGames), daysAgo(e.LastPlayedDaysAgo), gap, strings.Join(results, ""))
	}
	table.Render()
}

func daysAgo(n int) string {
	switch n {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", n)
	}
}

// PrintRepeatMap prints first-vs-repeat winrates.
func PrintRepeatMap(w io.Writer, r aggregator.RepeatMapResult) {
	section(w, "Repeat maps")
	fmt.Fprintf(w, "First time that day: %d%% over %d  |  Repeat: %d%% over %d  |  Delta: %+d\n",
		r.FirstOccurrenceWinrate, r.FirstOccurrenceTotal, r.RepeatWinrate, r.RepeatTotal, r.Delta)
	insight(w, r.Insight)
}
