package aggregator

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pable/owstats/internal/model"
)

// ---- Most played ----

type HeroCount struct {
	Hero  string     `json:"hero"`
	Count int        `json:"count"`
	Role  model.Role `json:"role"`
}

type MostPlayedInsight struct {
	TopHero  string     `json:"topHero"`
	TopCount int        `json:"topCount"`
	TopRole  model.Role `json:"topRole"`
}

type MostPlayedResult struct {
	Data    []HeroCount       `json:"data"`
	Insight MostPlayedInsight `json:"insight"`
}

const mostPlayedLimit = 10

// MostPlayedHeroes counts raw hero appearances (one per match the hero was
// played in) and returns the top ten. A non-empty mode restricts the count to
// matches of that map type.
func MostPlayedHeroes(matches []model.MatchRecord, mode model.MapType) MostPlayedResult {
	g := newGroup[string, HeroCount]()
	for _, m := range matches {
		if mode != "" && m.MapType != mode {
			continue
		}
		for _, h := range m.Heroes {
			g.get(h.Hero, func() HeroCount { return HeroCount{Hero: h.Hero, Role: h.Role} }).Count++
		}
	}
	data := make([]HeroCount, 0, g.len())
	g.each(func(_ string, c *HeroCount) { data = append(data, *c) })
	sort.SliceStable(data, func(i, j int) bool { return data[i].Count > data[j].Count })
	if len(data) > mostPlayedLimit {
		data = data[:mostPlayedLimit]
	}

	var ins MostPlayedInsight
	if len(data) > 0 {
		ins = MostPlayedInsight{TopHero: data[0].Hero, TopCount: data[0].Count, TopRole: data[0].Role}
	}
	return MostPlayedResult{Data: data, Insight: ins}
}

// ---- Hero winrates ----

type HeroWinrate struct {
	Hero    string `json:"hero"`
	Winrate int    `json:"winrate"`
	Wins    int    `json:"wins"`
	Total   int    `json:"total"`
}

type HeroWinratesInsight struct {
	BestHero     string `json:"bestHero"`
	BestWinrate  int    `json:"bestWinrate"`
	BestTotal    int    `json:"bestTotal"`
	WorstHero    string `json:"worstHero"`
	WorstWinrate int    `json:"worstWinrate"`
}

type HeroWinratesResult struct {
	Data    []HeroWinrate       `json:"data"`
	Insight HeroWinratesInsight `json:"insight"`
}

// HeroWinrates computes the winrate of every hero with at least three games,
// best first. A match counts once for each hero played in it.
func HeroWinrates(matches []model.MatchRecord) HeroWinratesResult {
	g := newGroup[string, tally]()
	for _, m := range matches {
		for _, h := range m.Heroes {
			g.get(h.Hero).add(m.Result)
		}
	}
	data := make([]HeroWinrate, 0, g.len())
	g.each(func(hero string, t *tally) {
		if t.total() < minHeroGames {
			return
		}
		data = append(data, HeroWinrate{Hero: hero, Winrate: t.winrate(), Wins: t.Wins, Total: t.total()})
	})
	sort.SliceStable(data, func(i, j int) bool { return data[i].Winrate > data[j].Winrate })

	var ins HeroWinratesInsight
	if len(data) > 0 {
		best, worst := data[0], data[len(data)-1]
		ins = HeroWinratesInsight{
			BestHero: best.Hero, BestWinrate: best.Winrate, BestTotal: best.Total,
			WorstHero: worst.Hero, WorstWinrate: worst.Winrate,
		}
	}
	return HeroWinratesResult{Data: data, Insight: ins}
}

// ---- One-trick detection ----

type HeroShare struct {
	Hero string     `json:"hero"`
	Pct  float64    `json:"pct"`
	Role model.Role `json:"role"`
}

type OneTrickResult struct {
	TopHero       string      `json:"topHero"`
	TopHeroRole   model.Role  `json:"topHeroRole"`
	TopHeroPct    float64     `json:"topHeroPct"`
	Label         string      `json:"label"`
	Description   string      `json:"description"`
	TopHeroesData []HeroShare `json:"topHeroesData"`
}

const (
	oneTrickPct   = 40
	specialistPct = 25
	oneTrickLimit = 5
)

// OneTrick reports how concentrated playtime is on a single hero. A hero's
// share is its summed allocation percentage over matches × 100; allocations
// are taken as-is, so after FilterByRole the shares describe the filtered
// role's slice of total match time.
func OneTrick(matches []model.MatchRecord) OneTrickResult {
	if len(matches) == 0 {
		return OneTrickResult{Label: "Diverse", Description: "No matches tracked yet", TopHeroesData: []HeroShare{}}
	}
	denom := float64(len(matches) * 100)
	played := heroPlaytimes(matches)
	shares := make([]HeroShare, 0, len(played))
	for _, hp := range played {
		shares = append(shares, HeroShare{
			Hero: hp.hero,
			Pct:  math.Floor(float64(hp.weight)/denom*1000+0.5) / 10,
			Role: hp.role,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Pct > shares[j].Pct })
	if len(shares) > oneTrickLimit {
		shares = shares[:oneTrickLimit]
	}

	res := OneTrickResult{Label: "Diverse", TopHeroesData: shares}
	if len(shares) == 0 {
		res.Description = "No matches tracked yet"
		return res
	}
	top := shares[0]
	res.TopHero, res.TopHeroRole, res.TopHeroPct = top.Hero, top.Role, top.Pct
	switch {
	case top.Pct >= oneTrickPct:
		res.Label = "One-Trick"
		res.Description = fmt.Sprintf("You've spent %s%% of your time on %s, a dedicated one-trick", formatFloat(top.Pct), top.Hero)
	case top.Pct >= specialistPct:
		res.Label = "Specialist"
		res.Description = fmt.Sprintf("You lean toward %s but still have some variety", top.Hero)
	default:
		res.Description = "Your playtime is spread across many heroes"
	}
	return res
}

// ---- Hero pool ----

type PoolHero struct {
	Hero string     `json:"hero"`
	Role model.Role `json:"role"`
}

type RoleCount struct {
	Role  model.Role `json:"role"`
	Count int        `json:"count"`
}

type HeroPoolResult struct {
	TotalUnique int         `json:"totalUnique"`
	ByRole      []RoleCount `json:"byRole"`
	HeroList    []PoolHero  `json:"heroList"`
}

// HeroPoolDiversity lists every distinct hero played, with the role recorded
// on its first appearance, sorted alphabetically by locale collation.
func HeroPoolDiversity(matches []model.MatchRecord) HeroPoolResult {
	g := newGroup[string, model.Role]()
	for _, m := range matches {
		for _, h := range m.Heroes {
			g.get(h.Hero, func() model.Role { return h.Role })
		}
	}
	list := make([]PoolHero, 0, g.len())
	g.each(func(hero string, role *model.Role) { list = append(list, PoolHero{Hero: hero, Role: *role}) })

	// Collators keep scratch buffers, so each call gets its own.
	c := collate.New(language.English)
	sort.SliceStable(list, func(i, j int) bool { return c.CompareString(list[i].Hero, list[j].Hero) < 0 })

	byRole := make([]RoleCount, len(model.Roles))
	for i, r := range model.Roles {
		byRole[i].Role = r
	}
	for _, h := range list {
		for i := range byRole {
			if byRole[i].Role == h.Role {
				byRole[i].Count++
			}
		}
	}
	return HeroPoolResult{TotalUnique: len(list), ByRole: byRole, HeroList: list}
}

// ---- Hero swap ----

type SwapBucket struct {
	Label   string  `json:"label"`
	Winrate float64 `json:"winrate"`
	Wins    int     `json:"wins"`
	Total   int     `json:"total"`
}

type HeroSwapResult struct {
	Data                  []SwapBucket `json:"data"`
	SwapWinrate           float64      `json:"swapWinrate"`
	NoSwapWinrate         float64      `json:"noSwapWinrate"`
	SwapTotal             int          `json:"swapTotal"`
	NoSwapTotal           int          `json:"noSwapTotal"`
	Delta                 float64      `json:"delta"`
	AvgHeroesPerSwapMatch float64      `json:"avgHeroesPerSwapMatch"`
	HasEnoughData         bool         `json:"hasEnoughData"`
	Insight               string       `json:"insight"`
}

const (
	swapMinPct   = 20
	swapMinGames = 3
)

// IsSwap reports whether a match had at least two significant heroes, i.e.
// allocations of 20% or more.
func IsSwap(m model.MatchRecord) bool {
	return significantHeroes(m) >= 2
}

func significantHeroes(m model.MatchRecord) int {
	n := 0
	for _, h := range m.Heroes {
		if h.Percentage >= swapMinPct {
			n++
		}
	}
	return n
}

// HeroSwap compares the winrate of matches where the player swapped heroes
// against matches where they stayed on one.
func HeroSwap(matches []model.MatchRecord) HeroSwapResult {
	var swapWins, swapTotal, stayWins, stayTotal, swapHeroes int
	for _, m := range matches {
		if n := significantHeroes(m); n >= 2 {
			swapTotal++
			swapHeroes += n
			if m.IsWin() {
				swapWins++
			}
		} else {
			stayTotal++
			if m.IsWin() {
				stayWins++
			}
		}
	}

	res := HeroSwapResult{
		SwapWinrate:   pct1(swapWins, swapTotal),
		NoSwapWinrate: pct1(stayWins, stayTotal),
		SwapTotal:     swapTotal,
		NoSwapTotal:   stayTotal,
		HasEnoughData: swapTotal >= swapMinGames && stayTotal >= swapMinGames,
	}
	res.Delta = round1(res.SwapWinrate - res.NoSwapWinrate)
	if swapTotal > 0 {
		res.AvgHeroesPerSwapMatch = round1(float64(swapHeroes) / float64(swapTotal))
	}
	res.Data = []SwapBucket{
		{Label: "Swapped", Winrate: res.SwapWinrate, Wins: swapWins, Total: swapTotal},
		{Label: "Stayed", Winrate: res.NoSwapWinrate, Wins: stayWins, Total: stayTotal},
	}

	switch {
	case !res.HasEnoughData:
		res.Insight = "Not enough data yet, play more matches to see swap correlation"
	case math.Abs(res.Delta) < 2:
		res.Insight = "Swapping heroes has no meaningful impact on your winrate"
	case res.Delta > 0:
		res.Insight = fmt.Sprintf("Swapping heroes gives you a +%s%% winrate boost", formatFloat(res.Delta))
	default:
		res.Insight = fmt.Sprintf("Staying on your hero gives you a +%s%% winrate advantage", formatFloat(math.Abs(res.Delta)))
	}
	return res
}

// formatFloat prints f with the fewest digits that round-trip (12.5, 10).
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
