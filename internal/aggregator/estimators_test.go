package aggregator

import (
	"math"
	"testing"
)

func TestWilsonInterval_KnownValues(t *testing.T) {
	cases := []struct {
		wins, total int
		low, high   int
	}{
		{0, 0, 0, 100},
		{5, 10, 24, 76},
		{3, 3, 44, 100},
		{3, 4, 30, 95},
		{0, 5, 0, 43},
	}
	for _, c := range cases {
		lo, hi := WilsonInterval(c.wins, c.total)
		if lo != c.low || hi != c.high {
			t.Errorf("WilsonInterval(%d, %d) = (%d, %d), want (%d, %d)", c.wins, c.total, lo, hi, c.low, c.high)
		}
	}
}

// TestWilsonInterval_ContainsPointEstimate checks the rounded observed
// winrate lies inside the interval (±1 for rounding) for every small sample.
func TestWilsonInterval_ContainsPointEstimate(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for wins := 0; wins <= total; wins++ {
			lo, hi := WilsonInterval(wins, total)
			p := int(math.Round(float64(wins) / float64(total) * 100))
			if lo < 0 || hi > 100 || lo > hi {
				t.Fatalf("(%d/%d): bad interval [%d, %d]", wins, total, lo, hi)
			}
			if p < lo-1 || p > hi+1 {
				t.Errorf("(%d/%d): point %d outside [%d, %d]", wins, total, p, lo, hi)
			}
		}
	}
}

func TestVolatility(t *testing.T) {
	cases := []struct {
		name                string
		wins, losses, draws int
		want                int
	}{
		{"single game", 1, 0, 0, 0},
		{"all wins", 10, 0, 0, 0},
		{"even split", 5, 5, 0, 100},
		{"80/20", 8, 2, 0, 80},
		{"all draws", 0, 0, 4, 0},
	}
	for _, c := range cases {
		if got := Volatility(c.wins, c.losses, c.draws); got != c.want {
			t.Errorf("%s: Volatility = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestVarietyScore_Boundaries(t *testing.T) {
	const catalogSize = 29

	oneMap := make([]int, catalogSize)
	oneMap[7] = 40
	if got := VarietyScore(oneMap, catalogSize); got != 0 {
		t.Errorf("one map only: score = %d, want 0", got)
	}

	even := make([]int, catalogSize)
	for i := range even {
		even[i] = 3
	}
	if got := VarietyScore(even, catalogSize); got != 100 {
		t.Errorf("even spread: score = %d, want 100", got)
	}

	if got := VarietyScore(make([]int, catalogSize), catalogSize); got != 0 {
		t.Errorf("no plays: score = %d, want 0", got)
	}
}

func TestMapTier_Scenarios(t *testing.T) {
	cases := []struct {
		winrate, total int
		want           string
	}{
		{80, 10, "S"},
		{80, 4, "A"},
		{100, 2, "C"},
		{0, 2, "C"},
		{50, 4, "B"},
		{40, 3, "C"},
		{60, 5, "A"},
		{45, 8, "B"},
		{35, 20, "C"},
		{30, 10, "D"},
	}
	for _, c := range cases {
		if got := MapTier(c.winrate, c.total); got != c.want {
			t.Errorf("MapTier(%d, %d) = %q, want %q", c.winrate, c.total, got, c.want)
		}
	}
}

func TestFlexibility_Boundaries(t *testing.T) {
	score, label := Flexibility([]float64{1, 0, 0})
	if score != 0 || label != "Specialist" {
		t.Errorf("single role: (%d, %q), want (0, Specialist)", score, label)
	}
	third := 1.0 / 3.0
	score, label = Flexibility([]float64{third, third, third})
	if score != 100 || label != "Adaptive" {
		t.Errorf("even split: (%d, %q), want (100, Adaptive)", score, label)
	}
	score, label = Flexibility([]float64{0.6, 0.3, 0.1})
	if score != 60 || label != "Flexible" {
		t.Errorf("60/30/10: (%d, %q), want (60, Flexible)", score, label)
	}
}
