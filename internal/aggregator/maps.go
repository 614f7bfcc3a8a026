package aggregator

import (
	"sort"
	"time"

	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/model"
)

// ---- Map win/loss ----

type MapWinLossEntry struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type MapWinLossInsight struct {
	BestMap      string `json:"bestMap"`
	BestWinrate  int    `json:"bestWinrate"`
	WorstMap     string `json:"worstMap"`
	WorstWinrate int    `json:"worstWinrate"`
}

type MapWinLossResult struct {
	Data    []MapWinLossEntry `json:"data"`
	Insight MapWinLossInsight `json:"insight"`
}

// MapWinLoss counts wins and losses per map. Draws are ignored entirely, so
// a map's winrate here is wins / (wins + losses). Rows are ordered by
// wins + losses descending.
func MapWinLoss(matches []model.MatchRecord) MapWinLossResult {
	g := newGroup[string, MapWinLossEntry]()
	for _, m := range matches {
		e := g.get(m.Map, func() MapWinLossEntry { return MapWinLossEntry{Name: m.Map} })
		switch m.Result {
		case model.ResultWin:
			e.Wins++
		case model.ResultLoss:
			e.Losses++
		}
	}
	data := make([]MapWinLossEntry, 0, g.len())
	g.each(func(_ string, e *MapWinLossEntry) { data = append(data, *e) })
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Wins+data[i].Losses > data[j].Wins+data[j].Losses
	})

	var ins MapWinLossInsight
	best, worst := -1.0, 101.0
	for _, e := range data {
		n := e.Wins + e.Losses
		if n == 0 {
			continue
		}
		wr := float64(e.Wins) / float64(n) * 100
		if wr > best {
			best, ins.BestMap = wr, e.Name
		}
		if wr < worst {
			worst, ins.WorstMap = wr, e.Name
		}
	}
	if ins.BestMap != "" {
		ins.BestWinrate = roundInt(best)
		ins.WorstWinrate = roundInt(worst)
	}
	return MapWinLossResult{Data: data, Insight: ins}
}

// ---- Map detail ----

type MapDetailedEntry struct {
	Name            string        `json:"name"`
	MapType         model.MapType `json:"mapType"`
	Wins            int           `json:"wins"`
	Losses          int           `json:"losses"`
	Draws           int           `json:"draws"`
	Total           int           `json:"total"`
	Winrate         int           `json:"winrate"`
	Deviation       int           `json:"deviation"`
	HasEnoughData   bool          `json:"hasEnoughData"`
	Tier            string        `json:"tier"`
	Volatility      int           `json:"volatility"`
	ConfidenceStars int           `json:"confidenceStars"`
}

type MapDetailedInsight struct {
	BestMap      string `json:"bestMap"`
	BestWinrate  int    `json:"bestWinrate"`
	WorstMap     string `json:"worstMap"`
	WorstWinrate int    `json:"worstWinrate"`
	MostVolatile string `json:"mostVolatile"`
}

type MapDetailedResult struct {
	Data           []MapDetailedEntry `json:"data"`
	OverallWinrate int                `json:"overallWinrate"`
	Insight        MapDetailedInsight `json:"insight"`
}

type mapBucket struct {
	mapType model.MapType
	tally
}

// MapDetailed computes per-map winrate, deviation from the overall winrate,
// tier, volatility and a confidence rating. Rows are ordered by winrate
// descending, then games played descending. Insight fields consider only
// maps with at least minMapGames games.
func MapDetailed(matches []model.MatchRecord) MapDetailedResult {
	overall := tallyOf(matches).winrate()

	g := newGroup[string, mapBucket]()
	for _, m := range matches {
		b := g.get(m.Map, func() mapBucket { return mapBucket{mapType: m.MapType} })
		b.add(m.Result)
	}

	data := make([]MapDetailedEntry, 0, g.len())
	g.each(func(name string, b *mapBucket) {
		total := b.total()
		wr := b.winrate()
		data = append(data, MapDetailedEntry{
			Name:            name,
			MapType:         b.mapType,
			Wins:            b.Wins,
			Losses:          b.Losses,
			Draws:           b.Draws,
			Total:           total,
			Winrate:         wr,
			Deviation:       wr - overall,
			HasEnoughData:   total >= minMapGames,
			Tier:            MapTier(wr, total),
			Volatility:      Volatility(b.Wins, b.Losses, b.Draws),
			ConfidenceStars: confidenceStars(total),
		})
	})
	sort.SliceStable(data, func(i, j int) bool {
		if data[i].Winrate != data[j].Winrate {
			return data[i].Winrate > data[j].Winrate
		}
		return data[i].Total > data[j].Total
	})

	var ins MapDetailedInsight
	best, worst, volatile := -1, 101, 0
	for _, e := range data {
		if !e.HasEnoughData {
			continue
		}
		if e.Winrate > best {
			best, ins.BestMap = e.Winrate, e.Name
		}
		if e.Winrate < worst {
			worst, ins.WorstMap = e.Winrate, e.Name
		}
		if e.Volatility > volatile {
			volatile, ins.MostVolatile = e.Volatility, e.Name
		}
	}
	if ins.BestMap != "" {
		ins.BestWinrate, ins.WorstWinrate = best, worst
	}
	return MapDetailedResult{Data: data, OverallWinrate: overall, Insight: ins}
}

// ---- Map familiarity ----

type MapFamiliarityEntry struct {
	Name        string         `json:"name"`
	MapType     model.MapType  `json:"mapType"`
	GamesPlayed int            `json:"gamesPlayed"`
	PctOfTotal  int            `json:"pctOfTotal"`
	LastResults []model.Result `json:"lastResults"`
}

type MapFamiliarityResult struct {
	Data               []MapFamiliarityEntry `json:"data"`
	VarietyScore       int                   `json:"varietyScore"`
	AvoidedMaps        []string              `json:"avoidedMaps"`
	TotalMapsPlayed    int                   `json:"totalMapsPlayed"`
	TotalMapsAvailable int                   `json:"totalMapsAvailable"`
}

const familiarityRecent = 5

// MapFamiliarity measures how the player's games spread across the full map
// catalog. Maps outside the catalog are ignored. Rows cover every catalog map
// ordered by games played descending; LastResults holds up to the five most
// recent outcomes in chronological order.
func MapFamiliarity(matches []model.MatchRecord, cat *catalog.Catalog) MapFamiliarityResult {
	entries := cat.Maps()
	idx := make(map[string]int, len(entries))
	data := make([]MapFamiliarityEntry, len(entries))
	for i, e := range entries {
		idx[e.Name] = i
		data[i] = MapFamiliarityEntry{Name: e.Name, MapType: e.Type, LastResults: []model.Result{}}
	}

	counted := 0
	for _, m := range chronological(matches) {
		i, ok := idx[m.Map]
		if !ok {
			continue
		}
		counted++
		data[i].GamesPlayed++
		data[i].LastResults = append(data[i].LastResults, m.Result)
		if n := len(data[i].LastResults); n > familiarityRecent {
			data[i].LastResults = data[i].LastResults[n-familiarityRecent:]
		}
	}

	counts := make([]int, len(data))
	avoided := []string{}
	played := 0
	for i := range data {
		counts[i] = data[i].GamesPlayed
		data[i].PctOfTotal = pct(data[i].GamesPlayed, counted)
		if data[i].GamesPlayed == 0 {
			avoided = append(avoided, data[i].Name)
		} else {
			played++
		}
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].GamesPlayed > data[j].GamesPlayed })

	return MapFamiliarityResult{
		Data:               data,
		VarietyScore:       VarietyScore(counts, len(entries)),
		AvoidedMaps:        avoided,
		TotalMapsPlayed:    played,
		TotalMapsAvailable: len(entries),
	}
}

// ---- Learning curve ----

type LearningCurveEntry struct {
	Map           string        `json:"map"`
	MapType       model.MapType `json:"mapType"`
	Total         int           `json:"total"`
	EarlyGames    int           `json:"earlyGames"`
	LateGames     int           `json:"lateGames"`
	EarlyWinrate  int           `json:"earlyWinrate"`
	LateWinrate   int           `json:"lateWinrate"`
	Improvement   int           `json:"improvement"`
	HasEnoughData bool          `json:"hasEnoughData"`
}

type LearningCurveInsight struct {
	MostImproved     string `json:"mostImproved"`
	ImprovementDelta int    `json:"improvementDelta"`
	MostDeclined     string `json:"mostDeclined"`
	DeclineDelta     int    `json:"declineDelta"`
}

type LearningCurveResult struct {
	Data    []LearningCurveEntry `json:"data"`
	Insight LearningCurveInsight `json:"insight"`
}

// MapLearningCurve splits each map's plays in chronological order into an
// early half (the first floor(n/2)) and a late half and compares winrates.
// Rows are ordered by improvement descending. Insight fields consider only
// maps with at least minCurveGames plays.
func MapLearningCurve(matches []model.MatchRecord) LearningCurveResult {
	g := newGroup[string, []model.MatchRecord]()
	for _, m := range chronological(matches) {
		plays := g.get(m.Map)
		*plays = append(*plays, m)
	}

	data := make([]LearningCurveEntry, 0, g.len())
	g.each(func(name string, plays *[]model.MatchRecord) {
		ms := *plays
		mid := len(ms) / 2
		early, late := tallyOf(ms[:mid]), tallyOf(ms[mid:])
		e := LearningCurveEntry{
			Map:           name,
			MapType:       ms[0].MapType,
			Total:         len(ms),
			EarlyGames:    mid,
			LateGames:     len(ms) - mid,
			EarlyWinrate:  early.winrate(),
			LateWinrate:   late.winrate(),
			HasEnoughData: len(ms) >= minCurveGames,
		}
		e.Improvement = e.LateWinrate - e.EarlyWinrate
		data = append(data, e)
	})
	sort.SliceStable(data, func(i, j int) bool { return data[i].Improvement > data[j].Improvement })

	var ins LearningCurveInsight
	for _, e := range data {
		if !e.HasEnoughData {
			continue
		}
		if e.Improvement > ins.ImprovementDelta {
			ins.MostImproved, ins.ImprovementDelta = e.Map, e.Improvement
		}
		if e.Improvement < ins.DeclineDelta {
			ins.MostDeclined, ins.DeclineDelta = e.Map, e.Improvement
		}
	}
	return LearningCurveResult{Data: data, Insight: ins}
}

// ---- Timeline ----

type TimelinePoint struct {
	MatchID  string       `json:"matchId"`
	Result   model.Result `json:"result"`
	PlayedAt time.Time    `json:"playedAt"`
}

type MapTimelineEntry struct {
	Map               string          `json:"map"`
	MapType           model.MapType   `json:"mapType"`
	TotalGames        int             `json:"totalGames"`
	History           []TimelinePoint `json:"history"`
	LastPlayedDaysAgo int             `json:"lastPlayedDaysAgo"`
	RotationGapDays   *float64        `json:"rotationGapDays"`
}

type MapTimelineResult struct {
	Maps []MapTimelineEntry `json:"maps"`
}

const timelineHistory = 20

// MapTimeline lists each map's most recent results (up to twenty, oldest
// first), the calendar days since it was last played relative to now, and the
// median gap in days between consecutive plays (nil with fewer than two
// plays). Maps are ordered by most recently played first.
func MapTimeline(matches []model.MatchRecord, now time.Time) MapTimelineResult {
	g := newGroup[string, []model.MatchRecord]()
	for _, m := range chronological(matches) {
		plays := g.get(m.Map)
		*plays = append(*plays, m)
	}

	out := make([]MapTimelineEntry, 0, g.len())
	g.each(func(name string, plays *[]model.MatchRecord) {
		ms := *plays
		last := ms[len(ms)-1]
		e := MapTimelineEntry{
			Map:        name,
			MapType:    ms[0].MapType,
			TotalGames: len(ms),
		}
		recent := ms
		if len(recent) > timelineHistory {
			recent = recent[len(recent)-timelineHistory:]
		}
		e.History = make([]TimelinePoint, 0, len(recent))
		for _, m := range recent {
			e.History = append(e.History, TimelinePoint{MatchID: m.ID, Result: m.Result, PlayedAt: m.PlayedAt})
		}
		e.LastPlayedDaysAgo = max(civilDays(last.PlayedAt, now.In(last.PlayedAt.Location())), 0)
		if len(ms) >= 2 {
			gaps := make([]float64, 0, len(ms)-1)
			for i := 1; i < len(ms); i++ {
				gaps = append(gaps, ms[i].PlayedAt.Sub(ms[i-1].PlayedAt).Hours()/24)
			}
			sort.Float64s(gaps)
			gap := round1(median(gaps))
			e.RotationGapDays = &gap
		}
		out = append(out, e)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].History[len(out[i].History)-1].PlayedAt.After(out[j].History[len(out[j].History)-1].PlayedAt)
	})
	return MapTimelineResult{Maps: out}
}
