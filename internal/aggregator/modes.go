package aggregator

import (
	"sort"

	"github.com/pable/owstats/internal/model"
)

type ModeCount struct {
	Mode  model.MapType `json:"mode"`
	Count int           `json:"count"`
}

type ModeDistributionInsight struct {
	DominantMode model.MapType `json:"dominantMode"`
	DominantPct  int           `json:"dominantPct"`
}

type ModeDistributionResult struct {
	Data    []ModeCount             `json:"data"`
	Insight ModeDistributionInsight `json:"insight"`
}

// GameModeDistribution counts matches per map type, most played first.
func GameModeDistribution(matches []model.MatchRecord) ModeDistributionResult {
	g := newGroup[model.MapType, int]()
	for _, m := range matches {
		*g.get(m.MapType)++
	}
	data := make([]ModeCount, 0, g.len())
	g.each(func(mode model.MapType, n *int) { data = append(data, ModeCount{Mode: mode, Count: *n}) })
	sort.SliceStable(data, func(i, j int) bool { return data[i].Count > data[j].Count })

	var ins ModeDistributionInsight
	if len(data) > 0 {
		ins.DominantMode = data[0].Mode
		ins.DominantPct = pct(data[0].Count, len(matches))
	}
	return ModeDistributionResult{Data: data, Insight: ins}
}

type ModeWinrate struct {
	Mode    model.MapType `json:"mode"`
	Winrate int           `json:"winrate"`
	Wins    int           `json:"wins"`
	Total   int           `json:"total"`
}

type ModeWinratesInsight struct {
	BestMode     model.MapType `json:"bestMode"`
	BestWinrate  int           `json:"bestWinrate"`
	WorstMode    model.MapType `json:"worstMode"`
	WorstWinrate int           `json:"worstWinrate"`
}

type ModeWinratesResult struct {
	Data    []ModeWinrate       `json:"data"`
	Insight ModeWinratesInsight `json:"insight"`
}

// GameModeWinrates computes the winrate per map type, best first.
func GameModeWinrates(matches []model.MatchRecord) ModeWinratesResult {
	g := newGroup[model.MapType, tally]()
	for _, m := range matches {
		g.get(m.MapType).add(m.Result)
	}
	data := make([]ModeWinrate, 0, g.len())
	g.each(func(mode model.MapType, t *tally) {
		data = append(data, ModeWinrate{Mode: mode, Winrate: t.winrate(), Wins: t.Wins, Total: t.total()})
	})
	sort.SliceStable(data, func(i, j int) bool { return data[i].Winrate > data[j].Winrate })

	var ins ModeWinratesInsight
	if len(data) > 0 {
		best, worst := data[0], data[len(data)-1]
		ins = ModeWinratesInsight{
			BestMode: best.Mode, BestWinrate: best.Winrate,
			WorstMode: worst.Mode, WorstWinrate: worst.Winrate,
		}
	}
	return ModeWinratesResult{Data: data, Insight: ins}
}
