package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/model"
	"github.com/pable/owstats/internal/storage"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, aggregator.SummaryStats{
		TotalMatches: 10, Wins: 6, Losses: 3, Draws: 1, Winrate: 60,
		UniqueMaps: 4, BestMap: "Ilios", BestMapWinrate: 75,
		CurrentStreak: 3, StreakType: "win",
	}, model.RoleSupport)

	out := buf.String()
	for _, want := range []string{"Matches: 10 (6W 3L 1D)", "Winrate: 60%", "Best map: Ilios (75%)", "Streak: 3W", "View: Support"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintMapTable_ShowsWilsonInterval(t *testing.T) {
	var buf bytes.Buffer
	PrintMapTable(&buf, aggregator.MapDetailedResult{
		Data: []aggregator.MapDetailedEntry{{
			Name: "Ilios", MapType: model.MapControl, Wins: 5, Losses: 5, Total: 10,
			Winrate: 50, HasEnoughData: true, Tier: "B", Volatility: 100, ConfidenceStars: 3,
		}},
		OverallWinrate: 50,
	})
	out := buf.String()
	if !strings.Contains(out, "24-76") || !strings.Contains(out, "***") {
		t.Errorf("map table missing interval or stars:\n%s", out)
	}
}

func TestPrintMapTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintMapTable(&buf, aggregator.MapDetailedResult{})
	if !strings.Contains(buf.String(), "No matches tracked yet.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintHeatmap_RowsPerWeekday(t *testing.T) {
	now := time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC) // Sunday
	in := []model.MatchRecord{{
		ID: "a", Map: "Ilios", MapType: model.MapControl, Result: model.ResultWin, GroupSize: 1,
		PlayedAt: now, CreatedAt: now,
		Heroes: []model.HeroAllocation{{Hero: "Ana", Role: model.RoleSupport, Percentage: 100}},
	}}
	var buf bytes.Buffer
	PrintHeatmap(&buf, aggregator.ActivityHeatmap(in, 2, now))

	lines := strings.Split(buf.String(), "\n")
	var sunday string
	for _, l := range lines {
		if strings.HasPrefix(l, "Sun ") {
			sunday = l
		}
	}
	if sunday != "Sun  #" {
		t.Errorf("sunday row = %q, want %q", sunday, "Sun  #")
	}
}

func TestPrintWeekly(t *testing.T) {
	var buf bytes.Buffer
	PrintWeekly(&buf, &storage.WeeklyOverview{
		Since:           time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Until:           time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		MatchesThisWeek: 12,
		TopHeroes:       []storage.NamedCount{{Name: "Ana", Count: 9}},
	})
	out := buf.String()
	for _, want := range []string{"Mar 1, 2026 to Mar 8, 2026", "Matches logged: 12", "Ana", "(none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("weekly missing %q:\n%s", want, out)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(50, 10); got != "#####....." {
		t.Errorf("bar(50, 10) = %q", got)
	}
}
