// Package catalog holds the closed map and hero lookup tables. A Catalog is
// immutable once built; callers receive copies of its slices.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pable/owstats/internal/model"
)

// MapEntry is one playable map.
type MapEntry struct {
	Name string        `yaml:"name" json:"name"`
	Type model.MapType `yaml:"type" json:"type"`
}

// HeroEntry is one playable hero.
type HeroEntry struct {
	Name string     `yaml:"name" json:"name"`
	Role model.Role `yaml:"role" json:"role"`
}

// Catalog indexes the map and hero tables by name.
type Catalog struct {
	maps    []MapEntry
	heroes  []HeroEntry
	mapIdx  map[string]MapEntry
	heroIdx map[string]HeroEntry
}

// New builds a Catalog, rejecting duplicate names, empty names and unknown roles.
func New(maps []MapEntry, heroes []HeroEntry) (*Catalog, error) {
	c := &Catalog{
		maps:    make([]MapEntry, 0, len(maps)),
		heroes:  make([]HeroEntry, 0, len(heroes)),
		mapIdx:  make(map[string]MapEntry, len(maps)),
		heroIdx: make(map[string]HeroEntry, len(heroes)),
	}
	for _, m := range maps {
		if m.Name == "" || m.Type == "" {
			return nil, fmt.Errorf("map entry %+v: name and type are required", m)
		}
		if _, dup := c.mapIdx[m.Name]; dup {
			return nil, fmt.Errorf("duplicate map %q", m.Name)
		}
		c.mapIdx[m.Name] = m
		c.maps = append(c.maps, m)
	}
	for _, h := range heroes {
		if h.Name == "" {
			return nil, fmt.Errorf("hero entry with empty name")
		}
		if !h.Role.Valid() {
			return nil, fmt.Errorf("hero %q: invalid role %q", h.Name, h.Role)
		}
		if _, dup := c.heroIdx[h.Name]; dup {
			return nil, fmt.Errorf("duplicate hero %q", h.Name)
		}
		c.heroIdx[h.Name] = h
		c.heroes = append(c.heroes, h)
	}
	return c, nil
}

// Maps returns the map table in catalog order.
func (c *Catalog) Maps() []MapEntry {
	return append([]MapEntry(nil), c.maps...)
}

// Heroes returns the hero table in catalog order.
func (c *Catalog) Heroes() []HeroEntry {
	return append([]HeroEntry(nil), c.heroes...)
}

// MapCount is the size of the map catalog.
func (c *Catalog) MapCount() int { return len(c.maps) }

// LookupMap returns the entry for a map name.
func (c *Catalog) LookupMap(name string) (MapEntry, bool) {
	m, ok := c.mapIdx[name]
	return m, ok
}

// LookupHero returns the entry for a hero name.
func (c *Catalog) LookupHero(name string) (HeroEntry, bool) {
	h, ok := c.heroIdx[name]
	return h, ok
}

// MapTypes returns the distinct map types in first-seen catalog order.
func (c *Catalog) MapTypes() []model.MapType {
	seen := make(map[model.MapType]struct{})
	var out []model.MapType
	for _, m := range c.maps {
		if _, ok := seen[m.Type]; ok {
			continue
		}
		seen[m.Type] = struct{}{}
		out = append(out, m.Type)
	}
	return out
}

// file is the on-disk YAML layout accepted by Load.
type file struct {
	Maps   []MapEntry  `yaml:"maps"`
	Heroes []HeroEntry `yaml:"heroes"`
}

// Load reads a YAML catalog file:
//
//	maps:
//	  - {name: Busan, type: Control}
//	heroes:
//	  - {name: Ana, role: Support}
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Maps) == 0 || len(f.Heroes) == 0 {
		return nil, fmt.Errorf("catalog needs at least one map and one hero")
	}
	return New(f.Maps, f.Heroes)
}
