package aggregator

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/owstats/internal/model"
)

const (
	// Trend labels shared by recent form and rolling winrate.
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	trendThreshold = 5

	defaultFormWindow    = 20
	defaultRollingWindow = 10
	defaultHeatmapWeeks  = 16
	recentResultsLimit   = 20

	// sessionGap is the idle time that splits one play session from the next.
	sessionGap = 3 * time.Hour
)

// ---- Streaks ----

type RecentResult struct {
	MatchID string       `json:"matchId"`
	Result  model.Result `json:"result"`
}

type StreakResult struct {
	CurrentStreak     int            `json:"currentStreak"`
	CurrentStreakType string         `json:"currentStreakType"`
	LongestWinStreak  int            `json:"longestWinStreak"`
	LongestLossStreak int            `json:"longestLossStreak"`
	RecentResults     []RecentResult `json:"recentResults"`
}

// currentStreak counts the run of identical results at the head of a
// newest-first slice. Only a win or a loss starts a streak.
func currentStreak(newest []model.MatchRecord) (int, string) {
	if len(newest) == 0 {
		return 0, "none"
	}
	first := newest[0].Result
	if first != model.ResultWin && first != model.ResultLoss {
		return 0, "none"
	}
	n := 0
	for _, m := range newest {
		if m.Result != first {
			break
		}
		n++
	}
	return n, string(first)
}

// Streaks reports the current streak, the longest win and loss streaks and the
// twenty most recent results (newest first). A draw ends both kinds of run.
func Streaks(matches []model.MatchRecord) StreakResult {
	newest := newestFirst(matches)
	res := StreakResult{RecentResults: make([]RecentResult, 0, min(len(newest), recentResultsLimit))}
	for i, m := range newest {
		if i == recentResultsLimit {
			break
		}
		res.RecentResults = append(res.RecentResults, RecentResult{MatchID: m.ID, Result: m.Result})
	}
	res.CurrentStreak, res.CurrentStreakType = currentStreak(newest)

	var runWin, runLoss int
	for i := len(newest) - 1; i >= 0; i-- {
		switch newest[i].Result {
		case model.ResultWin:
			runWin++
			runLoss = 0
			res.LongestWinStreak = max(res.LongestWinStreak, runWin)
		case model.ResultLoss:
			runLoss++
			runWin = 0
			res.LongestLossStreak = max(res.LongestLossStreak, runLoss)
		default:
			runWin, runLoss = 0, 0
		}
	}
	return res
}

// ---- Recent form ----

type FormStats struct {
	Winrate int `json:"winrate"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Draws   int `json:"draws"`
	Total   int `json:"total"`
}

type RecentFormResult struct {
	Recent  FormStats `json:"recent"`
	Overall FormStats `json:"overall"`
	Delta   int       `json:"delta"`
	Trend   string    `json:"trend"`
}

func formStats(matches []model.MatchRecord) FormStats {
	t := tallyOf(matches)
	return FormStats{Winrate: t.winrate(), Wins: t.Wins, Losses: t.Losses, Draws: t.Draws, Total: t.total()}
}

func trendOf(delta float64) string {
	switch {
	case delta >= trendThreshold:
		return TrendImproving
	case delta <= -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// RecentForm compares the winrate over the most recent window games
// (default 20 when window <= 0) against the all-time winrate.
func RecentForm(matches []model.MatchRecord, window int) RecentFormResult {
	if window <= 0 {
		window = defaultFormWindow
	}
	newest := newestFirst(matches)
	if len(newest) > window {
		newest = newest[:window]
	}
	res := RecentFormResult{Recent: formStats(newest), Overall: formStats(matches)}
	res.Delta = res.Recent.Winrate - res.Overall.Winrate
	res.Trend = trendOf(float64(res.Delta))
	return res
}

// ---- Rolling winrate ----

type RollingPoint struct {
	GameIndex      int          `json:"gameIndex"`
	Date           string       `json:"date"`
	RollingWinrate int          `json:"rollingWinrate"`
	Result         model.Result `json:"result"`
}

type RollingInsight struct {
	Trend          string `json:"trend"`
	PeakWinrate    int    `json:"peakWinrate"`
	CurrentWinrate int    `json:"currentWinrate"`
	Window         int    `json:"window"`
}

type RollingResult struct {
	Data    []RollingPoint `json:"data"`
	Insight RollingInsight `json:"insight"`
}

// RollingWinrate computes a simple moving average of the winrate over the
// trailing window games (default 10 when window <= 0) at each point of the
// chronological match sequence. The trend compares the mean of the series'
// first and second halves and needs at least 2×window points.
func RollingWinrate(matches []model.MatchRecord, window int) RollingResult {
	if window <= 0 {
		window = defaultRollingWindow
	}
	seq := chronological(matches)
	data := make([]RollingPoint, 0, len(seq))
	wins := 0
	for i, m := range seq {
		if m.IsWin() {
			wins++
		}
		if i >= window && seq[i-window].IsWin() {
			wins--
		}
		n := min(i+1, window)
		data = append(data, RollingPoint{
			GameIndex:      i + 1,
			Date:           dateKey(m.PlayedAt),
			RollingWinrate: pct(wins, n),
			Result:         m.Result,
		})
	}

	ins := RollingInsight{Trend: TrendStable, Window: window}
	for _, p := range data {
		ins.PeakWinrate = max(ins.PeakWinrate, p.RollingWinrate)
	}
	if len(data) > 0 {
		ins.CurrentWinrate = data[len(data)-1].RollingWinrate
	}
	if len(data) >= 2*window {
		mid := len(data) / 2
		ins.Trend = trendOf(meanRolling(data[mid:]) - meanRolling(data[:mid]))
	}
	return RollingResult{Data: data, Insight: ins}
}

func meanRolling(points []RollingPoint) float64 {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.RollingWinrate)
	}
	return stat.Mean(xs, nil)
}

// ---- Activity heatmap ----

type HeatmapDay struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

type HeatmapInsight struct {
	PeakDayOfWeek        string  `json:"peakDayOfWeek"`
	AvgGamesPerActiveDay float64 `json:"avgGamesPerActiveDay"`
	TotalActiveDays      int     `json:"totalActiveDays"`
}

type HeatmapResult struct {
	Data     []HeatmapDay   `json:"data"`
	MaxCount int            `json:"maxCount"`
	Insight  HeatmapInsight `json:"insight"`
}

// ActivityHeatmap returns one cell per calendar day for the trailing weeks
// (default 16 when weeks <= 0) ending on the latest Sunday on or before now's
// date, zero-count days included. Match days are taken in each PlayedAt's own
// location; the grid is laid out in now's location.
func ActivityHeatmap(matches []model.MatchRecord, weeks int, now time.Time) HeatmapResult {
	if weeks <= 0 {
		weeks = defaultHeatmapWeeks
	}
	counts := make(map[string]int)
	var dayTotals [7]int
	for _, m := range matches {
		counts[dateKey(m.PlayedAt)]++
		dayTotals[m.PlayedAt.Weekday()]++
	}

	y, mo, d := now.Date()
	end := time.Date(y, mo, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	days := weeks * 7
	res := HeatmapResult{Data: make([]HeatmapDay, 0, days)}
	ey, emo, ed := end.Date()
	for i := days - 1; i >= 0; i-- {
		key := dateKey(time.Date(ey, emo, ed-i, 0, 0, 0, 0, now.Location()))
		res.Data = append(res.Data, HeatmapDay{Date: key, Count: counts[key]})
		res.MaxCount = max(res.MaxCount, counts[key])
	}

	active, games := 0, 0
	for i := range res.Data {
		c := res.Data[i].Count
		if res.MaxCount > 0 {
			res.Data[i].Density = float64(c) / float64(res.MaxCount)
		}
		if c > 0 {
			active++
			games += c
		}
	}
	res.Insight.TotalActiveDays = active
	if active > 0 {
		res.Insight.AvgGamesPerActiveDay = round1(float64(games) / float64(active))
	}
	if len(matches) > 0 {
		peak := 0
		for i := 1; i < 7; i++ {
			if dayTotals[i] > dayTotals[peak] {
				peak = i
			}
		}
		res.Insight.PeakDayOfWeek = time.Weekday(peak).String()
	}
	return res
}

// ---- Day of week ----

type DayOfWeekEntry struct {
	DayIndex int    `json:"dayIndex"`
	Day      string `json:"day"`
	Winrate  int    `json:"winrate"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
	Total    int    `json:"total"`
}

type DayOfWeekResult struct {
	Data           []DayOfWeekEntry `json:"data"`
	BestDay        string           `json:"bestDay"`
	BestWinrate    int              `json:"bestWinrate"`
	WorstDay       string           `json:"worstDay"`
	WorstWinrate   int              `json:"worstWinrate"`
	WeekdayWinrate int              `json:"weekdayWinrate"`
	WeekendWinrate int              `json:"weekendWinrate"`
	Insight        string           `json:"insight"`
}

// DayOfWeek buckets matches by weekday (Sunday = 0) of their local PlayedAt
// and compares Monday-Friday against the weekend.
func DayOfWeek(matches []model.MatchRecord) DayOfWeekResult {
	var days [7]tally
	var weekday, weekend tally
	for _, m := range matches {
		wd := m.PlayedAt.Weekday()
		days[wd].add(m.Result)
		if wd == time.Saturday || wd == time.Sunday {
			weekend.add(m.Result)
		} else {
			weekday.add(m.Result)
		}
	}

	res := DayOfWeekResult{
		Data:           make([]DayOfWeekEntry, 0, 7),
		WeekdayWinrate: weekday.winrate(),
		WeekendWinrate: weekend.winrate(),
	}
	best, worst := -1, 101
	for i, t := range days {
		e := DayOfWeekEntry{
			DayIndex: i,
			Day:      time.Weekday(i).String()[:3],
			Winrate:  t.winrate(),
			Wins:     t.Wins,
			Losses:   t.Losses,
			Draws:    t.Draws,
			Total:    t.total(),
		}
		res.Data = append(res.Data, e)
		if e.Total == 0 {
			continue
		}
		if e.Winrate > best {
			best, res.BestDay = e.Winrate, e.Day
		}
		if e.Winrate < worst {
			worst, res.WorstDay = e.Winrate, e.Day
		}
	}
	if res.BestDay != "" {
		res.BestWinrate, res.WorstWinrate = best, worst
	}

	switch {
	case len(matches) == 0:
		res.Insight = "Track matches across different days to see when you perform best"
	case weekday.total() > 0 && weekend.total() > 0:
		delta := res.WeekendWinrate - res.WeekdayWinrate
		switch {
		case delta >= trendThreshold:
			res.Insight = fmt.Sprintf("You win %d%% more on weekends", delta)
		case delta <= -trendThreshold:
			res.Insight = fmt.Sprintf("You win %d%% more on weekdays", -delta)
		default:
			res.Insight = "You perform about the same on weekdays and weekends"
		}
	default:
		res.Insight = fmt.Sprintf("Best day: %s at %d%%", res.BestDay, res.BestWinrate)
	}
	return res
}

// ---- Sessions ----

type Session struct {
	SessionIndex    int       `json:"sessionIndex"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	GamesPlayed     int       `json:"gamesPlayed"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	Draws           int       `json:"draws"`
	Winrate         int       `json:"winrate"`
	DurationMinutes *int      `json:"durationMinutes"`
}

type SessionsResult struct {
	Sessions           []Session `json:"sessions"`
	AvgSessionWinrate  int       `json:"avgSessionWinrate"`
	AvgGamesPerSession float64   `json:"avgGamesPerSession"`
	BestSession        *Session  `json:"bestSession"`
	WorstSession       *Session  `json:"worstSession"`
	Insight            string    `json:"insight"`
}

// SplitSessions groups chronologically sorted matches into play sessions; a
// new session starts when more than three hours pass since the previous match.
func SplitSessions(matches []model.MatchRecord) [][]model.MatchRecord {
	var out [][]model.MatchRecord
	seq := chronological(matches)
	for i, m := range seq {
		if i == 0 || m.PlayedAt.Sub(seq[i-1].PlayedAt) > sessionGap {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], m)
	}
	return out
}

// Sessions summarises per-session performance. Fewer than two sessions yield
// an empty result.
func Sessions(matches []model.MatchRecord) SessionsResult {
	groups := SplitSessions(matches)
	if len(groups) < 2 {
		return SessionsResult{Sessions: []Session{}, Insight: "Play across at least two sessions to compare them"}
	}

	sessions := make([]Session, 0, len(groups))
	rates := make([]float64, 0, len(groups))
	sizes := make([]float64, 0, len(groups))
	for i, grp := range groups {
		t := tallyOf(grp)
		s := Session{
			SessionIndex: i + 1,
			StartedAt:    grp[0].PlayedAt,
			EndedAt:      grp[len(grp)-1].PlayedAt,
			GamesPlayed:  len(grp),
			Wins:         t.Wins,
			Losses:       t.Losses,
			Draws:        t.Draws,
			Winrate:      t.winrate(),
		}
		if len(grp) > 1 {
			d := roundInt(s.EndedAt.Sub(s.StartedAt).Minutes())
			s.DurationMinutes = &d
		}
		sessions = append(sessions, s)
		rates = append(rates, float64(s.Winrate))
		sizes = append(sizes, float64(s.GamesPlayed))
	}

	res := SessionsResult{
		Sessions:           sessions,
		AvgSessionWinrate:  roundInt(stat.Mean(rates, nil)),
		AvgGamesPerSession: round1(stat.Mean(sizes, nil)),
	}
	best, worst := sessions[0], sessions[0]
	for _, s := range sessions[1:] {
		if s.Winrate > best.Winrate {
			best = s
		}
		if s.Winrate < worst.Winrate {
			worst = s
		}
	}
	res.BestSession, res.WorstSession = &best, &worst
	res.Insight = fmt.Sprintf("%d sessions averaging %s games at %d%% winrate; best was session %d at %d%%",
		len(sessions), formatFloat(res.AvgGamesPerSession), res.AvgSessionWinrate, best.SessionIndex, best.Winrate)
	return res
}

// ---- Repeat maps ----

type RepeatMapResult struct {
	FirstOccurrenceWinrate int    `json:"firstOccurrenceWinrate"`
	RepeatWinrate          int    `json:"repeatWinrate"`
	FirstOccurrenceTotal   int    `json:"firstOccurrenceTotal"`
	RepeatTotal            int    `json:"repeatTotal"`
	Delta                  int    `json:"delta"`
	HasEnoughData          bool   `json:"hasEnoughData"`
	Insight                string `json:"insight"`
}

// RepeatMap compares the winrate on a map's first appearance within a
// calendar day against its later appearances that same day.
func RepeatMap(matches []model.MatchRecord) RepeatMapResult {
	var first, repeat tally
	seen := make(map[string]map[string]bool)
	for _, m := range chronological(matches) {
		day := dateKey(m.PlayedAt)
		maps, ok := seen[day]
		if !ok {
			maps = make(map[string]bool)
			seen[day] = maps
		}
		if maps[m.Map] {
			repeat.add(m.Result)
			continue
		}
		maps[m.Map] = true
		first.add(m.Result)
	}

	res := RepeatMapResult{
		FirstOccurrenceWinrate: first.winrate(),
		RepeatWinrate:          repeat.winrate(),
		FirstOccurrenceTotal:   first.total(),
		RepeatTotal:            repeat.total(),
		HasEnoughData:          repeat.total() >= minRepeatGames,
	}
	res.Delta = res.RepeatWinrate - res.FirstOccurrenceWinrate
	switch {
	case !res.HasEnoughData:
		res.Insight = fmt.Sprintf("Not enough repeat maps yet (%d of %d needed)", res.RepeatTotal, minRepeatGames)
	case res.Delta >= trendThreshold:
		res.Insight = fmt.Sprintf("You win %d%% more when a map comes up again the same day", res.Delta)
	case res.Delta <= -trendThreshold:
		res.Insight = fmt.Sprintf("You win %d%% less when a map comes up again the same day", -res.Delta)
	default:
		res.Insight = "Replaying a map the same day makes little difference to your winrate"
	}
	return res
}
