// Package aggregator derives statistical views from a user's match log.
//
// Every exported analyzer is a pure function over []model.MatchRecord: it never
// mutates its input, holds no state between calls, and returns a complete,
// JSON-serialisable result (zero values and empty slices for empty input).
// Analyzers that need chronological order copy the input before sorting, so a
// caller may share one slice across many concurrent analyzer calls.
package aggregator

import (
	"math"
	"sort"
	"time"

	"github.com/pable/owstats/internal/model"
)

// tally accumulates win/loss/draw counts for one bucket.
type tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (t *tally) add(r model.Result) {
	switch r {
	case model.ResultWin:
		t.Wins++
	case model.ResultLoss:
		t.Losses++
	default:
		t.Draws++
	}
}

func (t tally) total() int { return t.Wins + t.Losses + t.Draws }

// winrate is the integer-percent winrate; draws count in the denominator.
func (t tally) winrate() int { return pct(t.Wins, t.total()) }

// winrate1 is the one-decimal winrate.
func (t tally) winrate1() float64 { return pct1(t.Wins, t.total()) }

func tallyOf(matches []model.MatchRecord) tally {
	var t tally
	for _, m := range matches {
		t.add(m.Result)
	}
	return t
}

// group buckets values by key while remembering first-seen key order, so that
// stable sorts over the buckets are deterministic for a fixed input order.
type group[K comparable, V any] struct {
	keys []K
	vals map[K]*V
}

func newGroup[K comparable, V any]() *group[K, V] {
	return &group[K, V]{vals: make(map[K]*V)}
}

// get returns the bucket for k, creating it with init (or the zero value).
func (g *group[K, V]) get(k K, init ...func() V) *V {
	if v, ok := g.vals[k]; ok {
		return v
	}
	v := new(V)
	if len(init) > 0 {
		*v = init[0]()
	}
	g.vals[k] = v
	g.keys = append(g.keys, k)
	return v
}

func (g *group[K, V]) each(fn func(k K, v *V)) {
	for _, k := range g.keys {
		fn(k, g.vals[k])
	}
}

func (g *group[K, V]) len() int { return len(g.keys) }

// roundInt rounds half up, matching the presentation layer's rounding.
func roundInt(x float64) int {
	return int(math.Floor(x + 0.5))
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// pct returns round(n/d*100), or 0 when d is 0.
func pct(n, d int) int {
	if d <= 0 {
		return 0
	}
	return roundInt(float64(n) / float64(d) * 100)
}

// pct1 returns n/d as a percentage with one decimal, or 0 when d is 0.
func pct1(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return math.Floor(float64(n)/float64(d)*1000+0.5) / 10
}

// median returns the median of a pre-sorted (ascending) slice of float64.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// chronological returns a copy of matches sorted by PlayedAt ascending.
func chronological(matches []model.MatchRecord) []model.MatchRecord {
	out := append([]model.MatchRecord(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayedAt.Before(out[j].PlayedAt)
	})
	return out
}

// newestFirst returns a copy of matches sorted by PlayedAt descending.
func newestFirst(matches []model.MatchRecord) []model.MatchRecord {
	out := append([]model.MatchRecord(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayedAt.After(out[j].PlayedAt)
	})
	return out
}

// dateKey formats the calendar date of t in t's own location.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// civilDays returns the number of calendar days from a to b, each taken in
// its own location.
func civilDays(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
