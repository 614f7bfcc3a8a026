// Package ingest validates hand-entered match batches and turns them into
// records ready for storage. A batch is accepted whole or not at all.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/model"
)

// HeroInput is one hero share as entered by the player.
type HeroInput struct {
	Hero       string `json:"hero" yaml:"hero"`
	Percentage int    `json:"percentage" yaml:"percentage"`
}

// MatchInput is one match as entered by the player. PlayedAt accepts
// RFC 3339 or "2006-01-02 15:04" in the configured zone; empty means now.
type MatchInput struct {
	Map       string      `json:"map" yaml:"map"`
	Result    string      `json:"result" yaml:"result"`
	GroupSize int         `json:"groupSize" yaml:"groupSize"`
	PlayedAt  string      `json:"playedAt" yaml:"playedAt"`
	Heroes    []HeroInput `json:"heroes" yaml:"heroes"`
}

// ValidationError reports the first rule a batch broke. Index is 1-based.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Match %d: %s", e.Index, e.Reason)
}

const localLayout = "2006-01-02 15:04"

// Validate checks every input in order and stops at the first failure.
// On success it returns one record per input with MapType and hero roles
// taken from the catalog and CreatedAt set to now.
func Validate(inputs []MatchInput, cat *catalog.Catalog, loc *time.Location, now time.Time) ([]model.MatchRecord, error) {
	if loc == nil {
		loc = time.Local
	}
	out := make([]model.MatchRecord, 0, len(inputs))
	for i, in := range inputs {
		rec, reason := validateOne(in, cat, loc, now)
		if reason != "" {
			return nil, &ValidationError{Index: i + 1, Reason: reason}
		}
		out = append(out, rec)
	}
	return out, nil
}

func validateOne(in MatchInput, cat *catalog.Catalog, loc *time.Location, now time.Time) (model.MatchRecord, string) {
	mapEntry, ok := cat.LookupMap(in.Map)
	if !ok {
		return model.MatchRecord{}, fmt.Sprintf("Invalid map %q", in.Map)
	}
	result := model.Result(in.Result)
	if !result.Valid() {
		return model.MatchRecord{}, "Invalid result"
	}
	if in.GroupSize < 1 || in.GroupSize > 5 {
		return model.MatchRecord{}, "Group size must be 1-5"
	}
	if len(in.Heroes) == 0 {
		return model.MatchRecord{}, "At least one hero required"
	}
	sum := 0
	for _, h := range in.Heroes {
		sum += h.Percentage
	}
	if sum != 100 {
		return model.MatchRecord{}, fmt.Sprintf("Hero percentages must sum to 100 (got %d)", sum)
	}

	heroes := make([]model.HeroAllocation, 0, len(in.Heroes))
	for _, h := range in.Heroes {
		entry, ok := cat.LookupHero(h.Hero)
		if !ok {
			return model.MatchRecord{}, fmt.Sprintf("Invalid hero %q", h.Hero)
		}
		if h.Percentage < 1 || h.Percentage > 100 {
			return model.MatchRecord{}, "Hero percentage must be 1-100"
		}
		role := entry.Role
		if !role.Valid() {
			role = model.RoleDamage
		}
		heroes = append(heroes, model.HeroAllocation{Hero: entry.Name, Role: role, Percentage: h.Percentage})
	}

	played, err := ParsePlayedAt(in.PlayedAt, loc, now)
	if err != nil {
		return model.MatchRecord{}, fmt.Sprintf("Invalid played-at time %q", in.PlayedAt)
	}

	return model.MatchRecord{
		Map:       mapEntry.Name,
		MapType:   mapEntry.Type,
		Result:    result,
		GroupSize: in.GroupSize,
		PlayedAt:  played,
		CreatedAt: now,
		Heroes:    heroes,
	}, ""
}

// ParsePlayedAt accepts RFC 3339, "2006-01-02 15:04" or "2006-01-02" (the
// last two in loc). An empty string yields now.
func ParsePlayedAt(s string, loc *time.Location, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localLayout, s, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

// ParseHeroes parses the command-line form "Ana:60,Kiriko:40". The share
// follows the last colon so names like "Soldier: 76" still work; a part that
// is exactly a catalog hero name gets 100.
func ParseHeroes(s string, cat *catalog.Catalog) ([]HeroInput, error) {
	var (
		out     []HeroInput
		missing string
	)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := cat.LookupHero(part); ok {
			out = append(out, HeroInput{Hero: part, Percentage: 100})
			if missing == "" {
				missing = part
			}
			continue
		}
		i := strings.LastIndex(part, ":")
		if i < 0 {
			out = append(out, HeroInput{Hero: part, Percentage: 100})
			if missing == "" {
				missing = part
			}
			continue
		}
		name, pct := strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+1:])
		n, err := strconv.Atoi(pct)
		if err != nil {
			return nil, fmt.Errorf("hero %q: invalid percentage %q", name, pct)
		}
		out = append(out, HeroInput{Hero: name, Percentage: n})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no heroes given")
	}
	if len(out) > 1 && missing != "" {
		return nil, fmt.Errorf("hero %q needs a percentage when several heroes are given", missing)
	}
	return out, nil
}
