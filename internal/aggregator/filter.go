package aggregator

import "github.com/pable/owstats/internal/model"

// FilterByRole narrows matches to one role. model.RoleAll (or an empty role)
// returns matches unchanged. Otherwise only matches with at least one
// allocation of role are kept, and each kept match carries only that role's
// allocations. Percentages are not renormalised. The input is never modified;
// kept matches get fresh Heroes slices.
func FilterByRole(matches []model.MatchRecord, role model.Role) []model.MatchRecord {
	if role == model.RoleAll || role == "" {
		return matches
	}
	out := make([]model.MatchRecord, 0, len(matches))
	for _, m := range matches {
		var heroes []model.HeroAllocation
		for _, h := range m.Heroes {
			if h.Role == role {
				heroes = append(heroes, h)
			}
		}
		if len(heroes) == 0 {
			continue
		}
		m.Heroes = heroes
		out = append(out, m)
	}
	return out
}
