// Package model holds the match-log types shared by storage, ingest and the
// analytics engine.
package model

import "time"

// Result is the outcome of a single match.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// Valid reports whether r is one of the three known outcomes.
func (r Result) Valid() bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return true
	default:
		return false
	}
}

// Short returns the one-letter form used in sequences (W/L/D).
func (r Result) Short() string {
	switch r {
	case ResultWin:
		return "W"
	case ResultLoss:
		return "L"
	case ResultDraw:
		return "D"
	default:
		return "?"
	}
}

// Role is the hero role a hero belongs to.
type Role string

const (
	RoleTank    Role = "Tank"
	RoleDamage  Role = "Damage"
	RoleSupport Role = "Support"

	// RoleAll is the Role Filter value that disables filtering.
	RoleAll Role = "all"
)

// Roles lists the three playable roles in display order.
var Roles = []Role{RoleTank, RoleDamage, RoleSupport}

// Valid reports whether r is a playable role (RoleAll excluded).
func (r Role) Valid() bool {
	switch r {
	case RoleTank, RoleDamage, RoleSupport:
		return true
	default:
		return false
	}
}

// MapType is the game mode a map is played in.
type MapType string

const (
	MapControl    MapType = "Control"
	MapEscort     MapType = "Escort"
	MapHybrid     MapType = "Hybrid"
	MapPush       MapType = "Push"
	MapFlashpoint MapType = "Flashpoint"
	MapClash      MapType = "Clash"
)

// HeroAllocation is the share of one match spent on one hero.
type HeroAllocation struct {
	Hero       string `json:"hero"`
	Role       Role   `json:"role"`
	Percentage int    `json:"percentage"` // 1–100; sums to 100 within a match
}

// MatchRecord is one logged game.
type MatchRecord struct {
	ID        string           `json:"id"`
	Map       string           `json:"map"`
	MapType   MapType          `json:"mapType"`
	Result    Result           `json:"result"`
	GroupSize int              `json:"groupSize"`
	PlayedAt  time.Time        `json:"playedAt"`
	CreatedAt time.Time        `json:"createdAt"`
	Heroes    []HeroAllocation `json:"heroes"`
}

// IsWin reports whether the match was won.
func (m MatchRecord) IsWin() bool { return m.Result == ResultWin }

// HasRole reports whether any allocation in the match belongs to role.
func (m MatchRecord) HasRole(role Role) bool {
	for _, h := range m.Heroes {
		if h.Role == role {
			return true
		}
	}
	return false
}

// PercentageSum returns the sum of all allocation percentages.
func (m MatchRecord) PercentageSum() int {
	sum := 0
	for _, h := range m.Heroes {
		sum += h.Percentage
	}
	return sum
}
