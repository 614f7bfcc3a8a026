package catalog

import "github.com/pable/owstats/internal/model"

var defaultMaps = []MapEntry{
	{"Antarctic Peninsula", model.MapControl},
	{"Busan", model.MapControl},
	{"Ilios", model.MapControl},
	{"Lijiang Tower", model.MapControl},
	{"Nepal", model.MapControl},
	{"Oasis", model.MapControl},
	{"Samoa", model.MapControl},

	{"Circuit Royal", model.MapEscort},
	{"Dorado", model.MapEscort},
	{"Havana", model.MapEscort},
	{"Junkertown", model.MapEscort},
	{"Rialto", model.MapEscort},
	{"Route 66", model.MapEscort},
	{"Shambali Monastery", model.MapEscort},
	{"Watchpoint: Gibraltar", model.MapEscort},

	{"Blizzard World", model.MapHybrid},
	{"Eichenwalde", model.MapHybrid},
	{"Hollywood", model.MapHybrid},
	{"King's Row", model.MapHybrid},
	{"Midtown", model.MapHybrid},
	{"Numbani", model.MapHybrid},
	{"Paraiso", model.MapHybrid},

	{"Colosseo", model.MapPush},
	{"Esperança", model.MapPush},
	{"New Queen Street", model.MapPush},
	{"Runasapi", model.MapPush},

	{"Aatlis", model.MapFlashpoint},
	{"New Junk City", model.MapFlashpoint},
	{"Suravasa", model.MapFlashpoint},
}

var defaultHeroesByRole = map[model.Role][]string{
	model.RoleTank: {
		"D.Va", "Domina", "Doomfist", "Hazard", "Junker Queen", "Mauga", "Orisa",
		"Ramattra", "Reinhardt", "Roadhog", "Sigma", "Winston", "Wrecking Ball", "Zarya",
	},
	model.RoleDamage: {
		"Anran", "Ashe", "Bastion", "Cassidy", "Echo", "Emre", "Freja", "Genji",
		"Hanzo", "Junkrat", "Mei", "Pharah", "Reaper", "Sojourn", "Soldier: 76",
		"Sombra", "Symmetra", "Torbjörn", "Tracer", "Vendetta", "Venture", "Widowmaker",
	},
	model.RoleSupport: {
		"Ana", "Baptiste", "Brigitte", "Illari", "Jetpack Cat", "Juno", "Kiriko",
		"Lifeweaver", "Lúcio", "Mercy", "Mizuki", "Moira", "Wuyang", "Zenyatta",
	},
}

// Default returns the built-in catalog. Each call returns a fresh value.
func Default() *Catalog {
	var heroes []HeroEntry
	for _, role := range model.Roles {
		for _, name := range defaultHeroesByRole[role] {
			heroes = append(heroes, HeroEntry{Name: name, Role: role})
		}
	}
	c, err := New(defaultMaps, heroes)
	if err != nil {
		panic("catalog: invalid built-in catalog: " + err.Error())
	}
	return c
}
