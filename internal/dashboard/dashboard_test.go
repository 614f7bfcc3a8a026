package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/owstats/internal/aggregator"
	"github.com/pable/owstats/internal/model"
)

var now = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func matches() []model.MatchRecord {
	mk := func(id, mapName string, res model.Result, hoursAgo int, heroes ...model.HeroAllocation) model.MatchRecord {
		at := now.Add(-time.Duration(hoursAgo) * time.Hour)
		return model.MatchRecord{
			ID: id, Map: mapName, MapType: model.MapControl, Result: res, GroupSize: 1,
			PlayedAt: at, CreatedAt: at, Heroes: heroes,
		}
	}
	tank := model.HeroAllocation{Hero: "Reinhardt", Role: model.RoleTank, Percentage: 100}
	ana := model.HeroAllocation{Hero: "Ana", Role: model.RoleSupport, Percentage: 100}
	return []model.MatchRecord{
		mk("a", "Ilios", model.ResultWin, 30, tank),
		mk("b", "Ilios", model.ResultLoss, 29, ana),
		mk("c", "Busan", model.ResultWin, 5, ana),
		mk("d", "Busan", model.ResultWin, 4,
			model.HeroAllocation{Hero: "Ana", Role: model.RoleSupport, Percentage: 50},
			model.HeroAllocation{Hero: "Reinhardt", Role: model.RoleTank, Percentage: 50}),
	}
}

func TestBuild_MatchesSequentialAnalyzers(t *testing.T) {
	in := matches()
	got, err := Build(context.Background(), in, Options{Now: now})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got.Role != model.RoleAll || got.Matches != 4 {
		t.Errorf("role %q matches %d", got.Role, got.Matches)
	}
	if diff := cmp.Diff(aggregator.Summary(in), got.Summary); diff != "" {
		t.Errorf("summary (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(aggregator.Sessions(in), got.Sessions); diff != "" {
		t.Errorf("sessions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(aggregator.ActivityHeatmap(in, 0, now), got.Heatmap); diff != "" {
		t.Errorf("heatmap (-want +got):\n%s", diff)
	}
}

func TestBuild_RoleFilter(t *testing.T) {
	got, err := Build(context.Background(), matches(), Options{Now: now, Role: model.RoleTank})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Only a and d involve a tank.
	if got.Matches != 2 || got.Summary.TotalMatches != 2 || got.Summary.Wins != 2 {
		t.Errorf("tank view: matches %d summary %+v", got.Matches, got.Summary)
	}
	for _, h := range got.HeroPool.HeroList {
		if h.Role != model.RoleTank {
			t.Errorf("non-tank hero in filtered pool: %+v", h)
		}
	}

	if _, err := Build(context.Background(), matches(), Options{Role: "Healer"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, matches(), Options{Now: now}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuild_JSONShape(t *testing.T) {
	d, err := Build(context.Background(), nil, Options{Now: now})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"summary", "mapDetailed", "heroMapSynergy", "activityHeatmap", "sessions", "roles"} {
		if _, ok := top[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}
