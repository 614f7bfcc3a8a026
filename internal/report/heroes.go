package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pable/owstats/internal/aggregator"
)

// PrintModes prints play counts and winrates per game mode.
func PrintModes(w io.Writer, dist aggregator.ModeDistributionResult, rates aggregator.ModeWinratesResult) {
	section(w, "Game modes")
	wr := make(map[string]aggregator.ModeWinrate, len(rates.Data))
	for _, r := range rates.Data {
		wr[string(r.Mode)] = r
	}
	table := newTable(w)
	table.Header("MODE", "GAMES", "WINS", "WR%")
	for _, d := range dist.Data {
		r := wr[string(d.Mode)]
		table.Append(string(d.Mode), strconv.Itoa(d.Count), strconv.Itoa(r.Wins), pct(r.Winrate))
	}
	table.Render()
	if dist.Insight.DominantMode != "" {
		insight(w, fmt.Sprintf("Most played: %s (%d%% of games)", dist.Insight.DominantMode, dist.Insight.DominantPct))
	}
	if rates.Insight.BestMode != "" {
		insight(w, fmt.Sprintf("Best: %s (%d%%), worst: %s (%d%%)",
			rates.Insight.BestMode, rates.Insight.BestWinrate, rates.Insight.WorstMode, rates.Insight.WorstWinrate))
	}
}

// PrintHeroes prints the hero panels: most played, winrates, one-trick
// share, pool and swap impact.
func PrintHeroes(w io.Writer, played aggregator.MostPlayedResult, rates aggregator.HeroWinratesResult,
	trick aggregator.OneTrickResult, pool aggregator.HeroPoolResult, swap aggregator.HeroSwapResult) {
	section(w, "Most played heroes")
	table := newTable(w)
	table.Header("HERO", "ROLE", "GAMES")
	for _, h := range played.Data {
		table.Append(h.Hero, string(h.Role), strconv.Itoa(h.Count))
	}
	table.Render()

	section(w, "Hero winrates (3+ games)")
	if len(rates.Data) == 0 {
		fmt.Fprintln(w, "No hero has three games yet.")
	} else {
		table = newTable(w)
		table.Header("HERO", "W", "GAMES", "WR%", "95% CI")
		for _, h := range rates.Data {
			lo, hi := aggregator.WilsonInterval(h.Wins, h.Total)
			table.Append(h.Hero, strconv.Itoa(h.Wins), strconv.Itoa(h.Total), pct(h.Winrate), fmt.Sprintf("%d-%d", lo, hi))
		}
		table.Render()
	}

	section(w, "Hero focus")
	fmt.Fprintf(w, "%s: %s\n", trick.Label, trick.Description)
	if len(trick.TopHeroesData) > 0 {
		table = newTable(w)
		table.Header("HERO", "ROLE", "PLAYTIME")
		for _, h := range trick.TopHeroesData {
			table.Append(h.Hero, string(h.Role), pctf(h.Pct))
		}
		table.Render()
	}

	section(w, "Hero pool")
	counts := make([]string, len(pool.ByRole))
	for i, rc := range pool.ByRole {
		counts[i] = fmt.Sprintf("%s %d", rc.Role, rc.Count)
	}
	fmt.Fprintf(w, "%d unique heroes (%s)\n", pool.TotalUnique, strings.Join(counts, ", "))
	names := make([]string, len(pool.HeroList))
	for i, h := range pool.HeroList {
		names[i] = h.Hero
	}
	if len(names) > 0 {
		fmt.Fprintln(w, strings.Join(names, ", "))
	}

	section(w, "Hero swaps")
	table = newTable(w)
	table.Header("", "W", "GAMES", "WR%")
	for _, b := range swap.Data {
		table.Append(b.Label, strconv.Itoa(b.Wins), strconv.Itoa(b.Total), pctf(b.Winrate))
	}
	table.Render()
	if swap.SwapTotal > 0 {
		fmt.Fprintf(w, "Heroes per swap match: %s\n", strconv.FormatFloat(swap.AvgHeroesPerSwapMatch, 'f', -1, 64))
	}
	insight(w, swap.Insight)
}

// PrintSynergy prints the recommended hero per map.
func PrintSynergy(w io.Writer, r aggregator.SynergyResult) {
	section(w, "Best hero per map (3+ games, ranked by confidence)")
	if len(r.BestHeroPerMap) == 0 {
		fmt.Fprintln(w, "No hero has three games on any map yet.")
		return
	}
	table := newTable(w)
	table.Header("MAP", "MODE", "HERO", "ROLE", "W", "GAMES", "WR%", "95% CI")
	for _, b := range r.BestHeroPerMap {
		table.Append(b.Map, string(b.MapType), b.Hero, string(b.Role),
			strconv.Itoa(b.Wins), strconv.Itoa(b.Total), pct(b.Winrate),
			fmt.Sprintf("%d-%d", b.ConfidenceLow, b.ConfidenceHigh))
	}
	table.Render()
}

// PrintSynergyMatrix prints the hero × map winrate grid. Cells under three
// games are shown in parentheses; empty cells as "-".
func PrintSynergyMatrix(w io.Writer, r aggregator.SynergyResult) {
	if len(r.Heroes) == 0 || len(r.Maps) == 0 {
		return
	}
	section(w, "Hero x map winrates")
	cells := make(map[[2]string]aggregator.SynergyCell, len(r.Matrix))
	for _, c := range r.Matrix {
		cells[[2]string{c.Hero, c.Map}] = c
	}
	header := append([]any{"HERO"}, toAny(r.Maps)...)
	table := newTable(w)
	table.Header(header...)
	for _, hero := range r.Heroes {
		row := []any{hero}
		for _, m := range r.Maps {
			c := cells[[2]string{hero, m}]
			switch {
			case c.Total == 0:
				row = append(row, "-")
			case !c.HasEnoughData:
				row = append(row, fmt.Sprintf("(%d%%)", c.Winrate))
			default:
				row = append(row, pct(c.Winrate))
			}
		}
		table.Append(row...)
	}
	table.Render()
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// PrintRoles prints role share, role winrates, flexibility and group sizes.
func PrintRoles(w io.Writer, roles aggregator.RoleStatsResult, groups aggregator.GroupSizeResult) {
	section(w, "Roles")
	wr := make(map[string]aggregator.RoleWinrate, len(roles.Winrates))
	for _, r := range roles.Winrates {
		wr[string(r.Role)] = r
	}
	table := newTable(w)
	table.Header("ROLE", "SHARE", "GAMES", "W", "L", "D", "WR%")
	for _, s := range roles.Distribution {
		r := wr[string(s.Role)]
		table.Append(string(s.Role), pctf(s.Percentage), strconv.Itoa(r.Total),
			strconv.Itoa(r.Wins), strconv.Itoa(r.Losses), strconv.Itoa(r.Draws), pctf(r.Winrate))
	}
	table.Render()
	fmt.Fprintf(w, "Flexibility: %d/100 (%s)\n", roles.Flexibility.Score, roles.Flexibility.Label)
	insight(w, roles.Flexibility.Description)
	if roles.Insight.HasEnoughData {
		insight(w, fmt.Sprintf("Best role: %s (%s)", roles.Insight.BestRole, pctf(roles.Insight.BestWinrate)))
	}

	section(w, "Group size")
	table = newTable(w)
	table.Header("GROUP", "W", "L", "D", "GAMES", "WR%")
	for _, g := range groups.Data {
		table.Append(g.Label, strconv.Itoa(g.Wins), strconv.Itoa(g.Losses), strconv.Itoa(g.Draws),
			strconv.Itoa(g.Total), pctf(g.Winrate))
	}
	table.Render()
	if groups.Insight.HasEnoughData {
		insight(w, fmt.Sprintf("Best with: %s (%s)", groups.Insight.OptimalLabel, pctf(groups.Insight.OptimalWinrate)))
	}
}
