package aggregator

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/owstats/internal/model"
)

func TestMostPlayedHeroes_ModeFilter(t *testing.T) {
	in := sample()
	in[0].MapType = model.MapPush // Busan loss with Reinhardt + Ana

	all := MostPlayedHeroes(in, "")
	if all.Insight.TopHero != "Ana" || all.Insight.TopCount != 4 {
		t.Errorf("all modes insight = %+v", all.Insight)
	}
	push := MostPlayedHeroes(in, model.MapPush)
	want := []HeroCount{
		{Hero: "Reinhardt", Count: 1, Role: model.RoleTank},
		{Hero: "Ana", Count: 1, Role: model.RoleSupport},
	}
	if diff := cmp.Diff(want, push.Data); diff != "" {
		t.Errorf("push data (-want +got):\n%s", diff)
	}
}

func TestHeroWinrates_MinimumGames(t *testing.T) {
	got := HeroWinrates(sample())
	// Only Ana reaches three games (m1 W, m3 L, m4 L, m5 D).
	want := []HeroWinrate{{Hero: "Ana", Winrate: 25, Wins: 1, Total: 4}}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Errorf("data (-want +got):\n%s", diff)
	}
	if got.Insight.BestHero != "Ana" || got.Insight.BestTotal != 4 {
		t.Errorf("insight = %+v", got.Insight)
	}
}

func TestGroupSizeWinrates_Optimal(t *testing.T) {
	var in []model.MatchRecord
	add := func(size int, res ...model.Result) {
		for _, r := range res {
			m := match("g", "Ilios", r, time.Duration(len(in))*time.Hour)
			m.GroupSize = size
			in = append(in, m)
		}
	}
	add(2, W, W, L)
	add(1, W, L, L)
	add(3, W)

	got := GroupSizeWinrates(in)
	if len(got.Data) != 3 || got.Data[0].Label != "Solo" || got.Data[2].Label != "Trio" {
		t.Fatalf("data = %+v", got.Data)
	}
	if got.Data[0].Winrate != 33.3 || got.Data[1].Winrate != 66.7 {
		t.Errorf("winrates = %v, %v", got.Data[0].Winrate, got.Data[1].Winrate)
	}
	ins := got.Insight
	if ins.OptimalSize != 2 || ins.OptimalLabel != "Duo" || ins.OptimalWinrate != 66.7 || !ins.HasEnoughData {
		t.Errorf("insight = %+v", ins)
	}
	if ins.SoloWinrate == nil || *ins.SoloWinrate != 33.3 {
		t.Errorf("SoloWinrate = %v, want 33.3", ins.SoloWinrate)
	}
	if GroupSizeLabel(6) != "Full Stack" || GroupSizeLabel(8) != "8-Stack" {
		t.Errorf("labels: %q %q", GroupSizeLabel(6), GroupSizeLabel(8))
	}
}

func TestRoleStats_FlexibilityBoundaries(t *testing.T) {
	tankOnly := []model.MatchRecord{
		match("a", "Ilios", W, 0, hero("Reinhardt", model.RoleTank, 100)),
		match("b", "Ilios", L, time.Hour, hero("Winston", model.RoleTank, 100)),
	}
	got := RoleStats(tankOnly)
	if got.Flexibility.Score != 0 || got.Flexibility.Label != "Specialist" {
		t.Errorf("tank only: %+v", got.Flexibility)
	}
	if got.Insight.DominantRole != model.RoleTank || got.Insight.DominantPct != 100 {
		t.Errorf("tank only insight: %+v", got.Insight)
	}

	even := []model.MatchRecord{
		match("a", "Ilios", W, 0, hero("Reinhardt", model.RoleTank, 100)),
		match("b", "Ilios", L, time.Hour, hero("Tracer", model.RoleDamage, 100)),
		match("c", "Ilios", W, 2*time.Hour, hero("Ana", model.RoleSupport, 100)),
	}
	got = RoleStats(even)
	if got.Flexibility.Score != 100 || got.Flexibility.Label != "Adaptive" {
		t.Errorf("even split: %+v", got.Flexibility)
	}
}

func TestRoleStats_RenormalisesPerMatch(t *testing.T) {
	// Percentages summing to 50 still count as one whole match.
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0, hero("Reinhardt", model.RoleTank, 25), hero("Ana", model.RoleSupport, 25)),
		match("b", "Ilios", W, time.Hour, hero("Ana", model.RoleSupport, 100)),
		match("c", "Ilios", W, 2*time.Hour, hero("Ana", model.RoleSupport, 60), hero("Tracer", model.RoleDamage, 40)),
	}
	got := RoleStats(in)
	want := []RoleShare{
		{Role: model.RoleSupport, WeightedCount: 2.1, Percentage: 70},
		{Role: model.RoleTank, WeightedCount: 0.5, Percentage: 16.7},
		{Role: model.RoleDamage, WeightedCount: 0.4, Percentage: 13.3},
	}
	approx := cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })
	if diff := cmp.Diff(want, got.Distribution, approx); diff != "" {
		t.Errorf("distribution (-want +got):\n%s", diff)
	}
	// Support is present in all three matches.
	for _, w := range got.Winrates {
		if w.Role == model.RoleSupport && (w.Total != 3 || w.Winrate != 100) {
			t.Errorf("support winrate = %+v", w)
		}
	}
	if got.Insight.BestRole != model.RoleSupport || !got.Insight.HasEnoughData {
		t.Errorf("insight = %+v", got.Insight)
	}
}

func TestOneTrick_Labels(t *testing.T) {
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0, hero("Ana", model.RoleSupport, 100)),
		match("b", "Ilios", L, time.Hour, hero("Ana", model.RoleSupport, 50), hero("Kiriko", model.RoleSupport, 50)),
	}
	got := OneTrick(in)
	if got.Label != "One-Trick" || got.TopHero != "Ana" || got.TopHeroPct != 75 {
		t.Errorf("got %+v", got)
	}
	if got.Description != "You've spent 75% of your time on Ana, a dedicated one-trick" {
		t.Errorf("description = %q", got.Description)
	}

	spread := []model.MatchRecord{
		match("a", "Ilios", W, 0, hero("Ana", model.RoleSupport, 33), hero("Kiriko", model.RoleSupport, 33), hero("Lúcio", model.RoleSupport, 34)),
	}
	if got := OneTrick(spread); got.Label != "Specialist" || got.TopHero != "Lúcio" {
		t.Errorf("spread: %+v", got)
	}
}

func TestOneTrick_NoRenormalisationAfterFilter(t *testing.T) {
	in := []model.MatchRecord{
		match("a", "Ilios", W, 0, hero("Reinhardt", model.RoleTank, 60), hero("Ana", model.RoleSupport, 40)),
	}
	got := OneTrick(FilterByRole(in, model.RoleTank))
	if got.TopHeroPct != 60 {
		t.Errorf("TopHeroPct = %v, want 60 (filtered slice keeps raw share)", got.TopHeroPct)
	}
}

func TestHeroPoolDiversity(t *testing.T) {
	got := HeroPoolDiversity(sample())
	var names []string
	for _, h := range got.HeroList {
		names = append(names, h.Hero)
	}
	if diff := cmp.Diff([]string{"Ana", "Kiriko", "Lúcio", "Reinhardt", "Tracer"}, names); diff != "" {
		t.Errorf("hero list (-want +got):\n%s", diff)
	}
	wantRoles := []RoleCount{
		{Role: model.RoleTank, Count: 1},
		{Role: model.RoleDamage, Count: 1},
		{Role: model.RoleSupport, Count: 3},
	}
	if diff := cmp.Diff(wantRoles, got.ByRole); diff != "" {
		t.Errorf("by role (-want +got):\n%s", diff)
	}
	if got.TotalUnique != 5 {
		t.Errorf("TotalUnique = %d, want 5", got.TotalUnique)
	}
}

func TestIsSwap_Scenarios(t *testing.T) {
	swapped := match("a", "Ilios", W, 0, hero("Ana", model.RoleSupport, 60), hero("Kiriko", model.RoleSupport, 40))
	stayed := match("b", "Ilios", W, 0, hero("Ana", model.RoleSupport, 90), hero("Kiriko", model.RoleSupport, 10))
	if !IsSwap(swapped) {
		t.Error("[60, 40] should be a swap")
	}
	if IsSwap(stayed) {
		t.Error("[90, 10] should not be a swap")
	}
}

func TestHeroSwap_Insight(t *testing.T) {
	var in []model.MatchRecord
	for i := 0; i < 3; i++ {
		in = append(in,
			match("s", "Ilios", W, time.Duration(i)*time.Hour, hero("Ana", model.RoleSupport, 50), hero("Kiriko", model.RoleSupport, 50)),
			match("t", "Ilios", L, time.Duration(i)*time.Hour, hero("Ana", model.RoleSupport, 100)),
		)
	}
	in = append(in, match("u", "Ilios", W, 5*time.Hour, hero("Ana", model.RoleSupport, 100)))

	got := HeroSwap(in)
	if got.SwapWinrate != 100 || got.NoSwapWinrate != 25 || got.Delta != 75 {
		t.Errorf("winrates %v / %v, delta %v", got.SwapWinrate, got.NoSwapWinrate, got.Delta)
	}
	if got.AvgHeroesPerSwapMatch != 2 || !got.HasEnoughData {
		t.Errorf("avg %v, enough %v", got.AvgHeroesPerSwapMatch, got.HasEnoughData)
	}
	if got.Insight != "Swapping heroes gives you a +75% winrate boost" {
		t.Errorf("insight = %q", got.Insight)
	}
	if got.Data[0].Label != "Swapped" || got.Data[1].Label != "Stayed" {
		t.Errorf("data = %+v", got.Data)
	}

	if short := HeroSwap(in[:2]); short.HasEnoughData || short.Insight != "Not enough data yet, play more matches to see swap correlation" {
		t.Errorf("short sample: %+v", short)
	}
}

func TestHeroMapSynergy_BestHeroUsesWilsonLowerBound(t *testing.T) {
	var in []model.MatchRecord
	for i, r := range []model.Result{W, W, W} {
		in = append(in, match("ana", "Ilios", r, time.Duration(i)*time.Hour, hero("Ana", model.RoleSupport, 100)))
	}
	for i, r := range []model.Result{W, W, W, L} {
		in = append(in, match("kir", "Ilios", r, time.Duration(10+i)*time.Hour, hero("Kiriko", model.RoleSupport, 100)))
	}
	in = append(in, match("bus", "Busan", W, 20*time.Hour, hero("Kiriko", model.RoleSupport, 100)))

	got := HeroMapSynergy(in)
	if diff := cmp.Diff([]string{"Kiriko", "Ana"}, got.Heroes); diff != "" {
		t.Errorf("heroes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ilios", "Busan"}, got.Maps); diff != "" {
		t.Errorf("maps (-want +got):\n%s", diff)
	}
	if len(got.Matrix) != 4 {
		t.Fatalf("matrix has %d cells, want 4", len(got.Matrix))
	}
	if c := got.Matrix[3]; c.Hero != "Ana" || c.Map != "Busan" || c.Total != 0 || c.HasEnoughData {
		t.Errorf("zero cell = %+v", c)
	}

	if len(got.BestHeroPerMap) != 1 {
		t.Fatalf("best = %+v, want only Ilios", got.BestHeroPerMap)
	}
	want := BestHeroOnMap{
		Map: "Ilios", MapType: model.MapControl, Hero: "Ana", Role: model.RoleSupport,
		Winrate: 100, Wins: 3, Total: 3, ConfidenceLow: 44, ConfidenceHigh: 100,
	}
	if diff := cmp.Diff(want, got.BestHeroPerMap[0]); diff != "" {
		t.Errorf("best hero (-want +got):\n%s", diff)
	}
}
