package aggregator

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pable/owstats/internal/model"
)

// ---- Group size ----

type GroupSizeEntry struct {
	GroupSize int     `json:"groupSize"`
	Label     string  `json:"label"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Draws     int     `json:"draws"`
	Total     int     `json:"total"`
	Winrate   float64 `json:"winrate"`
}

type GroupSizeInsight struct {
	OptimalSize    int      `json:"optimalSize"`
	OptimalLabel   string   `json:"optimalLabel"`
	OptimalWinrate float64  `json:"optimalWinrate"`
	SoloWinrate    *float64 `json:"soloWinrate"`
	HasEnoughData  bool     `json:"hasEnoughData"`
}

type GroupSizeResult struct {
	Data    []GroupSizeEntry `json:"data"`
	Insight GroupSizeInsight `json:"insight"`
}

var groupSizeLabels = map[int]string{
	1: "Solo",
	2: "Duo",
	3: "Trio",
	4: "4-Stack",
	5: "5-Stack",
	6: "Full Stack",
}

// GroupSizeLabel names a party size ("Solo", "Duo", ...).
func GroupSizeLabel(size int) string {
	if l, ok := groupSizeLabels[size]; ok {
		return l
	}
	return strconv.Itoa(size) + "-Stack"
}

// GroupSizeWinrates computes one-decimal winrates per party size, ordered by
// size. The optimal size is the best winrate among sizes with at least three
// games (first wins ties); it defaults to Solo when none qualify.
func GroupSizeWinrates(matches []model.MatchRecord) GroupSizeResult {
	g := newGroup[int, tally]()
	for _, m := range matches {
		g.get(m.GroupSize).add(m.Result)
	}
	data := make([]GroupSizeEntry, 0, g.len())
	g.each(func(size int, t *tally) {
		data = append(data, GroupSizeEntry{
			GroupSize: size,
			Label:     GroupSizeLabel(size),
			Wins:      t.Wins,
			Losses:    t.Losses,
			Draws:     t.Draws,
			Total:     t.total(),
			Winrate:   t.winrate1(),
		})
	})
	sort.SliceStable(data, func(i, j int) bool { return data[i].GroupSize < data[j].GroupSize })

	ins := GroupSizeInsight{OptimalSize: 1, OptimalLabel: GroupSizeLabel(1)}
	var optimal *GroupSizeEntry
	for i := range data {
		e := &data[i]
		if e.Total < minHeroGames {
			continue
		}
		if optimal == nil || e.Winrate > optimal.Winrate {
			optimal = e
		}
		if e.GroupSize == 1 {
			solo := e.Winrate
			ins.SoloWinrate = &solo
		}
	}
	if optimal != nil {
		ins.OptimalSize, ins.OptimalLabel, ins.OptimalWinrate = optimal.GroupSize, optimal.Label, optimal.Winrate
		ins.HasEnoughData = true
	}
	return GroupSizeResult{Data: data, Insight: ins}
}

// ---- Role stats ----

type RoleShare struct {
	Role          model.Role `json:"role"`
	WeightedCount float64    `json:"weightedCount"`
	Percentage    float64    `json:"percentage"`
}

type RoleWinrate struct {
	Role    model.Role `json:"role"`
	Winrate float64    `json:"winrate"`
	Wins    int        `json:"wins"`
	Losses  int        `json:"losses"`
	Draws   int        `json:"draws"`
	Total   int        `json:"total"`
}

type RoleFlexibility struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type RoleStatsInsight struct {
	DominantRole  model.Role `json:"dominantRole"`
	DominantPct   float64    `json:"dominantPct"`
	BestRole      model.Role `json:"bestRole"`
	BestWinrate   float64    `json:"bestWinrate"`
	HasEnoughData bool       `json:"hasEnoughData"`
}

type RoleStatsResult struct {
	Distribution []RoleShare      `json:"distribution"`
	Winrates     []RoleWinrate    `json:"winrates"`
	Flexibility  RoleFlexibility  `json:"flexibility"`
	Insight      RoleStatsInsight `json:"insight"`
}

// RoleStats splits playtime across roles and computes role winrates.
//
// Distribution weights each match's allocations by their share of that
// match's own percentage sum, so every match contributes exactly 1 in total.
// Winrates count a match once for every role present in it. Flexibility is
// derived from the one-decimal distribution percentages.
func RoleStats(matches []model.MatchRecord) RoleStatsResult {
	weights := make(map[model.Role]float64, len(model.Roles))
	buckets := make(map[model.Role]*tally, len(model.Roles))
	for _, r := range model.Roles {
		buckets[r] = &tally{}
	}

	for _, m := range matches {
		for role, w := range roleWeights(m) {
			if role.Valid() {
				weights[role] += w
			}
		}
		for _, r := range model.Roles {
			if m.HasRole(r) {
				buckets[r].add(m.Result)
			}
		}
	}

	var totalWeight float64
	for _, r := range model.Roles {
		totalWeight += weights[r]
	}

	dist := make([]RoleShare, 0, len(model.Roles))
	for _, r := range model.Roles {
		s := RoleShare{Role: r, WeightedCount: weights[r]}
		if totalWeight > 0 {
			s.Percentage = round1(weights[r] / totalWeight * 100)
		}
		dist = append(dist, s)
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].WeightedCount > dist[j].WeightedCount })

	winrates := make([]RoleWinrate, 0, len(model.Roles))
	for _, r := range model.Roles {
		t := *buckets[r]
		winrates = append(winrates, RoleWinrate{
			Role: r, Winrate: t.winrate1(),
			Wins: t.Wins, Losses: t.Losses, Draws: t.Draws, Total: t.total(),
		})
	}

	res := RoleStatsResult{Distribution: dist, Winrates: winrates}

	if totalWeight == 0 {
		res.Flexibility = RoleFlexibility{Label: "Specialist", Description: "No matches tracked yet"}
	} else {
		shares := make([]float64, 0, len(model.Roles))
		for _, r := range model.Roles {
			for _, d := range dist {
				if d.Role == r {
					shares = append(shares, d.Percentage/100)
				}
			}
		}
		score, label := Flexibility(shares)
		dominant := dist[0].Role
		res.Flexibility = RoleFlexibility{Score: score, Label: label}
		switch label {
		case "Adaptive":
			res.Flexibility.Description = "You play all three roles nearly equally, a true flex player"
		case "Flexible":
			res.Flexibility.Description = fmt.Sprintf("You lean toward %s but still play others", dominant)
		default:
			res.Flexibility.Description = fmt.Sprintf("You mainly play %s, a dedicated specialist", dominant)
		}
		res.Insight.DominantRole = dominant
		res.Insight.DominantPct = dist[0].Percentage
	}

	var best *RoleWinrate
	for i := range winrates {
		w := &winrates[i]
		if w.Total < minHeroGames {
			continue
		}
		if best == nil || w.Winrate > best.Winrate {
			best = w
		}
	}
	if best != nil {
		res.Insight.BestRole, res.Insight.BestWinrate = best.Role, best.Winrate
		res.Insight.HasEnoughData = true
	}
	return res
}
