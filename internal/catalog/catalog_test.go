package catalog

import (
	"testing"

	"github.com/pable/owstats/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.MapCount() != 29 {
		t.Errorf("MapCount: want 29, got %d", c.MapCount())
	}
	m, ok := c.LookupMap("Ilios")
	if !ok || m.Type != model.MapControl {
		t.Errorf("Ilios: got %+v ok=%v", m, ok)
	}
	h, ok := c.LookupHero("Lúcio")
	if !ok || h.Role != model.RoleSupport {
		t.Errorf("Lúcio: got %+v ok=%v", h, ok)
	}
	if _, ok := c.LookupHero("Nobody"); ok {
		t.Error("unknown hero should not resolve")
	}
	types := c.MapTypes()
	want := []model.MapType{model.MapControl, model.MapEscort, model.MapHybrid, model.MapPush, model.MapFlashpoint}
	if len(types) != len(want) {
		t.Fatalf("MapTypes: want %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("MapTypes[%d]: want %s, got %s", i, want[i], types[i])
		}
	}
}

func TestMapsReturnsCopy(t *testing.T) {
	c := Default()
	maps := c.Maps()
	maps[0].Name = "mutated"
	if c.Maps()[0].Name == "mutated" {
		t.Error("Maps() must not expose the internal slice")
	}
}

func TestNewRejectsDuplicatesAndBadRoles(t *testing.T) {
	tests := []struct {
		name   string
		maps   []MapEntry
		heroes []HeroEntry
	}{
		{"dup map", []MapEntry{{"A", model.MapControl}, {"A", model.MapPush}}, []HeroEntry{{"Ana", model.RoleSupport}}},
		{"dup hero", []MapEntry{{"A", model.MapControl}}, []HeroEntry{{"Ana", model.RoleSupport}, {"Ana", model.RoleTank}}},
		{"bad role", []MapEntry{{"A", model.MapControl}}, []HeroEntry{{"Ana", "Healer"}}},
		{"missing type", []MapEntry{{"A", ""}}, []HeroEntry{{"Ana", model.RoleSupport}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.maps, tt.heroes); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
maps:
  - {name: Busan, type: Control}
  - {name: Dorado, type: Escort}
heroes:
  - {name: Ana, role: Support}
  - {name: Reinhardt, role: Tank}
`)
	c, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.MapCount() != 2 {
		t.Errorf("MapCount: want 2, got %d", c.MapCount())
	}
	if h, _ := c.LookupHero("Reinhardt"); h.Role != model.RoleTank {
		t.Errorf("Reinhardt role: got %s", h.Role)
	}

	if _, err := Parse([]byte("maps: []\nheroes: []\n")); err == nil {
		t.Error("empty catalog should be rejected")
	}
}
