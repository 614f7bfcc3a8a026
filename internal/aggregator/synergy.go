package aggregator

import (
	"sort"

	"github.com/pable/owstats/internal/model"
)

type SynergyCell struct {
	Hero          string `json:"hero"`
	Map           string `json:"map"`
	Wins          int    `json:"wins"`
	Total         int    `json:"total"`
	Winrate       int    `json:"winrate"`
	HasEnoughData bool   `json:"hasEnoughData"`
}

type BestHeroOnMap struct {
	Map            string        `json:"map"`
	MapType        model.MapType `json:"mapType"`
	Hero           string        `json:"hero"`
	Role           model.Role    `json:"role"`
	Winrate        int           `json:"winrate"`
	Wins           int           `json:"wins"`
	Total          int           `json:"total"`
	ConfidenceLow  int           `json:"confidenceLow"`
	ConfidenceHigh int           `json:"confidenceHigh"`
}

type SynergyResult struct {
	Matrix         []SynergyCell   `json:"matrix"`
	Heroes         []string        `json:"heroes"`
	Maps           []string        `json:"maps"`
	BestHeroPerMap []BestHeroOnMap `json:"bestHeroPerMap"`
}

const synergyHeroLimit = 15

type heroMapKey struct{ hero, mapName string }

type heroMapStat struct {
	role model.Role
	tally
}

// HeroMapSynergy builds a dense hero × map winrate matrix over the fifteen
// most-played heroes and every map played, most-played first on both axes.
//
// BestHeroPerMap considers every hero with at least three games on the map
// and ranks them by the lower bound of the Wilson interval, then raw winrate,
// then games played.
func HeroMapSynergy(matches []model.MatchRecord) SynergyResult {
	heroCounts := newGroup[string, int]()
	mapCounts := newGroup[string, int]()
	mapTypes := make(map[string]model.MapType)
	pairs := newGroup[heroMapKey, heroMapStat]()

	for _, m := range matches {
		*mapCounts.get(m.Map)++
		if _, ok := mapTypes[m.Map]; !ok {
			mapTypes[m.Map] = m.MapType
		}
		for _, h := range m.Heroes {
			*heroCounts.get(h.Hero)++
			pairs.get(heroMapKey{h.Hero, m.Map}, func() heroMapStat { return heroMapStat{role: h.Role} }).add(m.Result)
		}
	}

	heroes := rankedKeys(heroCounts)
	if len(heroes) > synergyHeroLimit {
		heroes = heroes[:synergyHeroLimit]
	}
	maps := rankedKeys(mapCounts)

	matrix := make([]SynergyCell, 0, len(heroes)*len(maps))
	for _, h := range heroes {
		for _, mp := range maps {
			c := SynergyCell{Hero: h, Map: mp}
			if s, ok := pairs.vals[heroMapKey{h, mp}]; ok {
				c.Wins, c.Total, c.Winrate = s.Wins, s.total(), s.winrate()
			}
			c.HasEnoughData = c.Total >= minHeroMapGames
			matrix = append(matrix, c)
		}
	}

	candidates := make(map[string][]BestHeroOnMap)
	pairs.each(func(k heroMapKey, s *heroMapStat) {
		total := s.total()
		if total < minHeroMapGames {
			return
		}
		lo, hi := WilsonInterval(s.Wins, total)
		candidates[k.mapName] = append(candidates[k.mapName], BestHeroOnMap{
			Map:            k.mapName,
			MapType:        mapTypes[k.mapName],
			Hero:           k.hero,
			Role:           s.role,
			Winrate:        s.winrate(),
			Wins:           s.Wins,
			Total:          total,
			ConfidenceLow:  lo,
			ConfidenceHigh: hi,
		})
	})

	best := make([]BestHeroOnMap, 0, len(candidates))
	for _, mp := range maps {
		cs := candidates[mp]
		if len(cs) == 0 {
			continue
		}
		top := cs[0]
		for _, c := range cs[1:] {
			if betterOnMap(c, top) {
				top = c
			}
		}
		best = append(best, top)
	}

	return SynergyResult{Matrix: matrix, Heroes: heroes, Maps: maps, BestHeroPerMap: best}
}

func betterOnMap(a, b BestHeroOnMap) bool {
	if a.ConfidenceLow != b.ConfidenceLow {
		return a.ConfidenceLow > b.ConfidenceLow
	}
	if a.Winrate != b.Winrate {
		return a.Winrate > b.Winrate
	}
	return a.Total > b.Total
}

// rankedKeys returns the group's keys ordered by count descending, first-seen
// order breaking ties.
func rankedKeys(g *group[string, int]) []string {
	keys := append([]string(nil), g.keys...)
	sort.SliceStable(keys, func(i, j int) bool { return *g.vals[keys[i]] > *g.vals[keys[j]] })
	if keys == nil {
		keys = []string{}
	}
	return keys
}
