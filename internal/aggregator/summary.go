package aggregator

import "github.com/pable/owstats/internal/model"

type SummaryStats struct {
	TotalMatches   int    `json:"totalMatches"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Draws          int    `json:"draws"`
	Winrate        int    `json:"winrate"`
	UniqueMaps     int    `json:"uniqueMaps"`
	BestMap        string `json:"bestMap"`
	BestMapWinrate int    `json:"bestMapWinrate"`
	CurrentStreak  int    `json:"currentStreak"`
	StreakType     string `json:"streakType"`
}

// Summary is the top-line digest: all-time record, distinct maps played, the
// best map by MapWinLoss (no minimum sample) and the current streak.
func Summary(matches []model.MatchRecord) SummaryStats {
	t := tallyOf(matches)
	maps := make(map[string]struct{})
	for _, m := range matches {
		maps[m.Map] = struct{}{}
	}
	ins := MapWinLoss(matches).Insight
	s := SummaryStats{
		TotalMatches:   len(matches),
		Wins:           t.Wins,
		Losses:         t.Losses,
		Draws:          t.Draws,
		Winrate:        t.winrate(),
		UniqueMaps:     len(maps),
		BestMap:        ins.BestMap,
		BestMapWinrate: ins.BestWinrate,
	}
	s.CurrentStreak, s.StreakType = currentStreak(newestFirst(matches))
	return s
}
