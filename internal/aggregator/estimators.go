package aggregator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/owstats/internal/model"
)

const (
	// wilsonZ is the z-score for a 95% interval.
	wilsonZ = 1.96

	// minMapGames is the games needed before a map is ranked or tiered.
	minMapGames = 5
	// minHeroGames is the games needed for hero, group-size and role winrates.
	minHeroGames = 3
	// minHeroMapGames is the games needed for a hero/map synergy cell.
	minHeroMapGames = 3
	// minRepeatGames is the repeat instances needed for a repeat-map verdict.
	minRepeatGames = 5
	// minCurveGames is the plays on a map needed for a learning-curve verdict.
	minCurveGames = 6
)

// WilsonInterval returns the 95% Wilson score interval for wins out of total,
// as integer percents clamped to [0, 100]. total == 0 yields (0, 100).
func WilsonInterval(wins, total int) (low, high int) {
	if total <= 0 {
		return 0, 100
	}
	n := float64(total)
	p := float64(wins) / n
	z2 := wilsonZ * wilsonZ
	denom := 1 + z2/n
	centre := (p + z2/(2*n)) / denom
	spread := wilsonZ * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom
	low = roundInt(math.Max(0, centre-spread) * 100)
	high = roundInt(math.Min(1, centre+spread) * 100)
	return low, high
}

// Volatility scores how streaky a bucket's results are on a 0-100 scale:
// wins count 1, draws 0.5, losses 0, and the score is round(stddev × 200)
// using the population standard deviation. Fewer than two games score 0.
func Volatility(wins, losses, draws int) int {
	total := wins + losses + draws
	if total < 2 {
		return 0
	}
	values := []float64{1, 0.5, 0}
	weights := []float64{float64(wins), float64(draws), float64(losses)}
	v := stat.PopVariance(values, weights)
	return roundInt(math.Sqrt(v) * 200)
}

// VarietyScore is the Shannon entropy of counts normalised against an even
// spread over catalogSize entries, as an integer 0-100. No plays, or a
// catalog of fewer than two entries, scores 0.
func VarietyScore(counts []int, catalogSize int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 || catalogSize < 2 {
		return 0
	}
	p := make([]float64, 0, len(counts))
	for _, c := range counts {
		p = append(p, float64(c)/float64(total))
	}
	// stat.Entropy skips zero probabilities and uses the natural log; the ratio
	// to the maximum is base-independent.
	h := stat.Entropy(p)
	score := roundInt(h / math.Log(float64(catalogSize)) * 100)
	if score > 100 {
		score = 100
	}
	return score
}

// MapTier grades a map from its integer winrate and games played. Small
// samples are capped: under 3 games is always "C", and 3-4 games can reach
// at most "A" and at worst "C".
func MapTier(winrate, total int) string {
	switch {
	case total < 3:
		return "C"
	case total < minMapGames:
		switch {
		case winrate >= 65:
			return "A"
		case winrate >= 45:
			return "B"
		default:
			return "C"
		}
	}
	switch {
	case winrate >= 65:
		return "S"
	case winrate >= 55:
		return "A"
	case winrate >= 45:
		return "B"
	case winrate >= 35:
		return "C"
	default:
		return "D"
	}
}

// confidenceStars maps a sample size to a 1-5 star rating.
func confidenceStars(total int) int {
	switch {
	case total >= 20:
		return 5
	case total >= 15:
		return 4
	case total >= 10:
		return 3
	case total >= minMapGames:
		return 2
	default:
		return 1
	}
}

// Flexibility scores how evenly play is spread across the three roles.
// shares are the role fractions (summing to ~1). The score is
// round((1 - Σ|share - 1/3| / (4/3)) × 100). Labels: "Adaptive" at 80 or
// above, "Flexible" at 55 or above, otherwise "Specialist".
func Flexibility(shares []float64) (score int, label string) {
	even := 1.0 / 3.0
	deviation := 0.0
	for _, s := range shares {
		deviation += math.Abs(s - even)
	}
	score = roundInt((1 - deviation/(4.0/3.0)) * 100)
	switch {
	case score >= 80:
		label = "Adaptive"
	case score >= 55:
		label = "Flexible"
	default:
		label = "Specialist"
	}
	return score, label
}

// roleWeights returns each role's share of a match, renormalised over the
// allocations present so that the shares sum to 1. A match whose percentages
// sum to zero weighs each allocation's raw percentage (i.e. zero).
func roleWeights(m model.MatchRecord) map[model.Role]float64 {
	sum := m.PercentageSum()
	norm := float64(sum)
	if sum <= 0 {
		norm = 1
	}
	w := make(map[model.Role]float64, len(model.Roles))
	for _, h := range m.Heroes {
		w[h.Role] += float64(h.Percentage) / norm
	}
	return w
}

// heroPlaytime sums raw allocation percentages per hero in first-seen order.
type heroPlaytime struct {
	hero   string
	role   model.Role
	weight int
}

func heroPlaytimes(matches []model.MatchRecord) []heroPlaytime {
	g := newGroup[string, heroPlaytime]()
	for _, m := range matches {
		for _, h := range m.Heroes {
			hp := g.get(h.Hero, func() heroPlaytime { return heroPlaytime{hero: h.Hero, role: h.Role} })
			hp.weight += h.Percentage
		}
	}
	out := make([]heroPlaytime, 0, g.len())
	g.each(func(_ string, hp *heroPlaytime) { out = append(out, *hp) })
	return out
}
