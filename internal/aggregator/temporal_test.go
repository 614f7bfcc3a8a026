package aggregator

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/owstats/internal/model"
)

// ---- Streak tests ----

// TestStreaks_WinWinLossWin: oldest→newest [W, W, L, W].
func TestStreaks_WinWinLossWin(t *testing.T) {
	in := sequence("Ilios", W, W, L, W)
	// Shuffle so the analyzer has to sort.
	in[0], in[3] = in[3], in[0]

	got := Streaks(in)
	if got.CurrentStreak != 1 || got.CurrentStreakType != "win" {
		t.Errorf("current = %d %s, want 1 win", got.CurrentStreak, got.CurrentStreakType)
	}
	if got.LongestWinStreak != 2 || got.LongestLossStreak != 1 {
		t.Errorf("longest win %d loss %d, want 2 and 1", got.LongestWinStreak, got.LongestLossStreak)
	}
	want := []RecentResult{
		{MatchID: "Iliosd", Result: W},
		{MatchID: "Iliosc", Result: L},
		{MatchID: "Iliosb", Result: W},
		{MatchID: "Iliosa", Result: W},
	}
	if diff := cmp.Diff(want, got.RecentResults); diff != "" {
		t.Errorf("recent (-want +got):\n%s", diff)
	}
}

func TestStreaks_DrawBreaksBothRuns(t *testing.T) {
	got := Streaks(sequence("Ilios", L, L, D, L, W, W, W, D))
	if got.CurrentStreak != 0 || got.CurrentStreakType != "none" {
		t.Errorf("leading draw: current = %d %s", got.CurrentStreak, got.CurrentStreakType)
	}
	if got.LongestLossStreak != 2 || got.LongestWinStreak != 3 {
		t.Errorf("longest win %d loss %d, want 3 and 2", got.LongestWinStreak, got.LongestLossStreak)
	}
}

func TestStreaks_RecentCapped(t *testing.T) {
	results := make([]model.Result, 25)
	for i := range results {
		results[i] = L
	}
	got := Streaks(sequence("Ilios", results...))
	if len(got.RecentResults) != 20 || got.CurrentStreak != 25 || got.CurrentStreakType != "loss" {
		t.Errorf("recent %d, current %d %s", len(got.RecentResults), got.CurrentStreak, got.CurrentStreakType)
	}
}

// ---- Form and rolling tests ----

func TestRecentForm(t *testing.T) {
	// Four old losses followed by four recent wins; window of four.
	got := RecentForm(sequence("Ilios", L, L, L, L, W, W, W, W), 4)
	if got.Recent.Winrate != 100 || got.Overall.Winrate != 50 || got.Delta != 50 || got.Trend != TrendImproving {
		t.Errorf("got %+v", got)
	}
	if got.Recent.Total != 4 || got.Overall.Total != 8 {
		t.Errorf("totals %d / %d", got.Recent.Total, got.Overall.Total)
	}
	if flat := RecentForm(sequence("Ilios", W, L), 0); flat.Trend != TrendStable {
		t.Errorf("flat trend = %s", flat.Trend)
	}
}

func TestRollingWinrate_ThreeWinsTwoLosses(t *testing.T) {
	got := RollingWinrate(sequence("Ilios", W, W, W, L, L), 10)
	if len(got.Data) != 5 {
		t.Fatalf("len = %d, want 5", len(got.Data))
	}
	if p := got.Data[4]; p.GameIndex != 5 || p.RollingWinrate != 60 || p.Result != L {
		t.Errorf("point 5 = %+v, want 60%%", p)
	}
	if got.Data[2].RollingWinrate != 100 {
		t.Errorf("point 3 = %d, want 100", got.Data[2].RollingWinrate)
	}
	if got.Insight.PeakWinrate != 100 || got.Insight.CurrentWinrate != 60 || got.Insight.Trend != TrendStable {
		t.Errorf("insight = %+v", got.Insight)
	}
	if got.Data[0].Date != "2026-03-02" {
		t.Errorf("date = %q", got.Data[0].Date)
	}
}

func TestRollingWinrate_WindowSlidesAndTrend(t *testing.T) {
	got := RollingWinrate(sequence("Ilios", L, L, L, L, W, W, W, W), 2)
	var rates []int
	for _, p := range got.Data {
		rates = append(rates, p.RollingWinrate)
	}
	if diff := cmp.Diff([]int{0, 0, 0, 0, 50, 100, 100, 100}, rates); diff != "" {
		t.Errorf("rates (-want +got):\n%s", diff)
	}
	if got.Insight.Trend != TrendImproving || got.Insight.Window != 2 {
		t.Errorf("insight = %+v", got.Insight)
	}
}

// ---- Calendar tests ----

func TestActivityHeatmap(t *testing.T) {
	day := 24 * time.Hour
	// base is Monday 2026-03-02; the grid should end on Sunday 2026-03-01.
	in := []model.MatchRecord{
		match("a", "Ilios", W, -2*day),
		match("b", "Ilios", W, -2*day+time.Hour),
		match("c", "Ilios", L, -day),
		match("d", "Ilios", L, 0),
	}
	now := base.Add(2 * day) // Wednesday
	got := ActivityHeatmap(in, 1, now)

	if len(got.Data) != 7 || got.Data[0].Date != "2026-02-23" || got.Data[6].Date != "2026-03-01" {
		t.Fatalf("grid = %+v", got.Data)
	}
	if got.MaxCount != 2 || got.Data[5].Count != 2 || got.Data[5].Density != 1 || got.Data[6].Density != 0.5 {
		t.Errorf("counts: max %d, sat %+v, sun %+v", got.MaxCount, got.Data[5], got.Data[6])
	}
	want := HeatmapInsight{PeakDayOfWeek: "Saturday", AvgGamesPerActiveDay: 1.5, TotalActiveDays: 2}
	if diff := cmp.Diff(want, got.Insight); diff != "" {
		t.Errorf("insight (-want +got):\n%s", diff)
	}
}

func TestActivityHeatmap_SundayIsInclusive(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 21, 0, 0, 0, time.UTC)
	got := ActivityHeatmap(nil, 2, sunday)
	if len(got.Data) != 14 || got.Data[13].Date != "2026-03-08" {
		t.Errorf("last day = %q, want 2026-03-08", got.Data[len(got.Data)-1].Date)
	}
}

func TestDayOfWeek(t *testing.T) {
	day := 24 * time.Hour
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0),         // Monday
		match("b", "Ilios", W, time.Hour), // Monday
		match("c", "Ilios", L, 5*day),     // Saturday
	}
	got := DayOfWeek(in)
	if len(got.Data) != 7 || got.Data[0].Day != "Sun" || got.Data[1].Total != 2 {
		t.Fatalf("data = %+v", got.Data)
	}
	if got.BestDay != "Mon" || got.WorstDay != "Sat" || got.BestWinrate != 100 || got.WorstWinrate != 0 {
		t.Errorf("best %s %d, worst %s %d", got.BestDay, got.BestWinrate, got.WorstDay, got.WorstWinrate)
	}
	if got.WeekdayWinrate != 100 || got.WeekendWinrate != 0 {
		t.Errorf("weekday %d weekend %d", got.WeekdayWinrate, got.WeekendWinrate)
	}
	if got.Insight != "You win 100% more on weekdays" {
		t.Errorf("insight = %q", got.Insight)
	}
}

// ---- Session tests ----

func TestSessions_GapSplits(t *testing.T) {
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0),
		match("b", "Ilios", L, time.Hour),
		match("c", "Ilios", W, 4*time.Hour+time.Minute), // 3h01m gap
		match("d", "Ilios", W, 4*time.Hour+31*time.Minute),
	}
	got := Sessions(in)
	if len(got.Sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(got.Sessions))
	}
	s1, s2 := got.Sessions[0], got.Sessions[1]
	if s1.Winrate != 50 || *s1.DurationMinutes != 60 || s2.Winrate != 100 || *s2.DurationMinutes != 30 {
		t.Errorf("s1 %+v, s2 %+v", s1, s2)
	}
	if got.AvgSessionWinrate != 75 || got.AvgGamesPerSession != 2 {
		t.Errorf("averages %d / %v", got.AvgSessionWinrate, got.AvgGamesPerSession)
	}
	if got.BestSession.SessionIndex != 2 || got.WorstSession.SessionIndex != 1 {
		t.Errorf("best %d worst %d", got.BestSession.SessionIndex, got.WorstSession.SessionIndex)
	}
}

func TestSessions_ExactlyThreeHoursStaysTogether(t *testing.T) {
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0),
		match("b", "Ilios", W, 3*time.Hour),
		match("c", "Ilios", W, 9*time.Hour),
	}
	groups := SplitSessions(in)
	if len(groups) != 2 || len(groups[0]) != 2 {
		t.Fatalf("groups = %d (first %d), want 2 (first 2)", len(groups), len(groups[0]))
	}
	got := Sessions(in)
	if got.Sessions[1].DurationMinutes != nil {
		t.Error("single-match session should have nil duration")
	}
}

func TestSessions_SingleSessionIsEmpty(t *testing.T) {
	got := Sessions(sequence("Ilios", W, L, W))
	if len(got.Sessions) != 0 || got.BestSession != nil || got.AvgSessionWinrate != 0 {
		t.Errorf("got %+v", got)
	}
}

// ---- Repeat map tests ----

func TestRepeatMap_SameDay(t *testing.T) {
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0),
		match("b", "Ilios", L, time.Hour),
		match("c", "Busan", W, 2*time.Hour),
		match("d", "Ilios", W, 24*time.Hour), // next day: first occurrence again
	}
	got := RepeatMap(in)
	if got.FirstOccurrenceTotal != 3 || got.RepeatTotal != 1 {
		t.Errorf("first %d repeat %d, want 3 and 1", got.FirstOccurrenceTotal, got.RepeatTotal)
	}
	if got.FirstOccurrenceWinrate != 100 || got.RepeatWinrate != 0 || got.Delta != -100 || got.HasEnoughData {
		t.Errorf("got %+v", got)
	}
}
