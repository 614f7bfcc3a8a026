package aggregator

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/model"
)

func TestMapWinLoss_DrawsExcluded(t *testing.T) {
	got := MapWinLoss(sample())
	want := MapWinLossResult{
		Data: []MapWinLossEntry{
			{Name: "Ilios", Wins: 2, Losses: 1},
			{Name: "Busan", Wins: 1, Losses: 1},
			{Name: "Nepal"},
		},
		Insight: MapWinLossInsight{BestMap: "Ilios", BestWinrate: 67, WorstMap: "Busan", WorstWinrate: 50},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapWinLoss (-want +got):\n%s", diff)
	}
}

func TestMapDetailed_TierAndVolatility(t *testing.T) {
	in := sequence("Ilios", W, W, W, W, L, W, W, L, W, W)
	in = append(in, sequence("Busan", W, L)...)

	got := MapDetailed(in)
	if got.OverallWinrate != 75 {
		t.Errorf("OverallWinrate = %d, want 75", got.OverallWinrate)
	}
	ilios := got.Data[0]
	want := MapDetailedEntry{
		Name: "Ilios", MapType: model.MapControl,
		Wins: 8, Losses: 2, Total: 10,
		Winrate: 80, Deviation: 5,
		HasEnoughData: true, Tier: "S", Volatility: 80, ConfidenceStars: 3,
	}
	if diff := cmp.Diff(want, ilios); diff != "" {
		t.Errorf("Ilios row (-want +got):\n%s", diff)
	}
	busan := got.Data[1]
	if busan.Tier != "C" || busan.HasEnoughData || busan.ConfidenceStars != 1 {
		t.Errorf("Busan row = %+v", busan)
	}
	// Busan has only two games, so it cannot be the worst map.
	if got.Insight.BestMap != "Ilios" || got.Insight.WorstMap != "Ilios" || got.Insight.MostVolatile != "Ilios" {
		t.Errorf("Insight = %+v", got.Insight)
	}
}

func TestMapFamiliarity(t *testing.T) {
	cat, err := catalog.New(
		[]catalog.MapEntry{{Name: "Ilios", Type: model.MapControl}, {Name: "Busan", Type: model.MapControl}, {Name: "Dorado", Type: model.MapEscort}},
		[]catalog.HeroEntry{{Name: "Ana", Role: model.RoleSupport}},
	)
	if err != nil {
		t.Fatal(err)
	}
	in := sequence("Ilios", W, L, W, W, L, D)
	in = append(in, match("x", "Busan", W, 10*time.Hour), match("y", "Unknown", W, 11*time.Hour))

	got := MapFamiliarity(in, cat)
	if got.TotalMapsAvailable != 3 || got.TotalMapsPlayed != 2 {
		t.Errorf("played %d of %d, want 2 of 3", got.TotalMapsPlayed, got.TotalMapsAvailable)
	}
	if diff := cmp.Diff([]string{"Dorado"}, got.AvoidedMaps); diff != "" {
		t.Errorf("AvoidedMaps (-want +got):\n%s", diff)
	}
	first := got.Data[0]
	if first.Name != "Ilios" || first.GamesPlayed != 6 || first.PctOfTotal != 86 {
		t.Errorf("first row = %+v", first)
	}
	if diff := cmp.Diff([]model.Result{L, W, W, L, D}, first.LastResults); diff != "" {
		t.Errorf("LastResults (-want +got):\n%s", diff)
	}
	if got.VarietyScore <= 0 || got.VarietyScore >= 100 {
		t.Errorf("VarietyScore = %d, want strictly between 0 and 100", got.VarietyScore)
	}
}

func TestMapLearningCurve(t *testing.T) {
	in := sequence("Ilios", L, L, L, W, W, W)
	in = append(in, sequence("Busan", W, L)...)

	got := MapLearningCurve(in)
	if len(got.Data) != 2 {
		t.Fatalf("len = %d, want 2", len(got.Data))
	}
	want := LearningCurveEntry{
		Map: "Ilios", MapType: model.MapControl, Total: 6,
		EarlyGames: 3, LateGames: 3, EarlyWinrate: 0, LateWinrate: 100,
		Improvement: 100, HasEnoughData: true,
	}
	if diff := cmp.Diff(want, got.Data[0]); diff != "" {
		t.Errorf("Ilios (-want +got):\n%s", diff)
	}
	if got.Data[1].HasEnoughData {
		t.Error("Busan should not qualify with two games")
	}
	if got.Insight.MostImproved != "Ilios" || got.Insight.ImprovementDelta != 100 || got.Insight.MostDeclined != "" {
		t.Errorf("Insight = %+v", got.Insight)
	}
}

func TestMapTimeline(t *testing.T) {
	day := 24 * time.Hour
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0),
		match("b", "Ilios", L, 2*day),
		match("c", "Ilios", W, 5*day),
		match("d", "Busan", D, 6*day),
	}
	got := MapTimeline(in, base.Add(7*day))
	if len(got.Maps) != 2 || got.Maps[0].Map != "Busan" {
		t.Fatalf("maps = %+v, want Busan first", got.Maps)
	}
	ilios := got.Maps[1]
	if ilios.LastPlayedDaysAgo != 2 {
		t.Errorf("LastPlayedDaysAgo = %d, want 2", ilios.LastPlayedDaysAgo)
	}
	if ilios.RotationGapDays == nil || *ilios.RotationGapDays != 2.5 {
		t.Errorf("RotationGapDays = %v, want 2.5", ilios.RotationGapDays)
	}
	var seq []model.Result
	for _, p := range ilios.History {
		seq = append(seq, p.Result)
	}
	if diff := cmp.Diff([]model.Result{W, L, W}, seq); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}
	if got.Maps[0].RotationGapDays != nil {
		t.Error("single play should have no rotation gap")
	}
}

func TestMapTimeline_HistoryCapped(t *testing.T) {
	results := make([]model.Result, 25)
	for i := range results {
		results[i] = W
	}
	results[24] = L
	got := MapTimeline(sequence("Ilios", results...), base.Add(48*time.Hour))
	h := got.Maps[0].History
	if len(h) != 20 || h[19].Result != L || got.Maps[0].TotalGames != 25 {
		t.Errorf("history len %d, last %v, total %d", len(h), h[len(h)-1].Result, got.Maps[0].TotalGames)
	}
}
