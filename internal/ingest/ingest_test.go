package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/owstats/internal/catalog"
	"github.com/pable/owstats/internal/model"
)

var now = time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)

func valid() MatchInput {
	return MatchInput{
		Map:       "Ilios",
		Result:    "win",
		GroupSize: 2,
		PlayedAt:  "2026-03-01T18:00:00Z",
		Heroes:    []HeroInput{{Hero: "Ana", Percentage: 60}, {Hero: "Kiriko", Percentage: 40}},
	}
}

// ---- Validate tests ----

func TestValidate_BuildsRecords(t *testing.T) {
	got, err := Validate([]MatchInput{valid()}, catalog.Default(), time.UTC, now)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []model.MatchRecord{{
		Map:       "Ilios",
		MapType:   model.MapControl,
		Result:    model.ResultWin,
		GroupSize: 2,
		PlayedAt:  time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		CreatedAt: now,
		Heroes: []model.HeroAllocation{
			{Hero: "Ana", Role: model.RoleSupport, Percentage: 60},
			{Hero: "Kiriko", Role: model.RoleSupport, Percentage: 40},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate (-want +got):\n%s", diff)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MatchInput)
		want   string
	}{
		{"unknown map", func(m *MatchInput) { m.Map = "Atlantis" }, `Invalid map "Atlantis"`},
		{"bad result", func(m *MatchInput) { m.Result = "tie" }, "Invalid result"},
		{"group too big", func(m *MatchInput) { m.GroupSize = 6 }, "Group size must be 1-5"},
		{"group zero", func(m *MatchInput) { m.GroupSize = 0 }, "Group size must be 1-5"},
		{"no heroes", func(m *MatchInput) { m.Heroes = nil }, "At least one hero required"},
		{"sum off", func(m *MatchInput) { m.Heroes[1].Percentage = 30 }, "Hero percentages must sum to 100 (got 90)"},
		{"unknown hero", func(m *MatchInput) { m.Heroes[1].Hero = "Gandalf" }, `Invalid hero "Gandalf"`},
		{"zero share", func(m *MatchInput) {
			m.Heroes = []HeroInput{{Hero: "Ana", Percentage: 100}, {Hero: "Kiriko", Percentage: 0}}
		}, "Hero percentage must be 1-100"},
		{"bad time", func(m *MatchInput) { m.PlayedAt = "yesterday" }, `Invalid played-at time "yesterday"`},
	}
	for _, c := range cases {
		in := valid()
		c.mutate(&in)
		_, err := Validate([]MatchInput{valid(), in}, catalog.Default(), time.UTC, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: err = %v, want ValidationError", c.name, err)
			continue
		}
		if verr.Index != 2 || verr.Reason != c.want {
			t.Errorf("%s: got index %d reason %q, want 2 %q", c.name, verr.Index, verr.Reason, c.want)
		}
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Index: 3, Reason: "Invalid result"}
	if err.Error() != "Match 3: Invalid result" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestParsePlayedAt(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	got, err := ParsePlayedAt("2026-03-01 21:15", berlin, now)
	if err != nil || !got.Equal(time.Date(2026, 3, 1, 20, 15, 0, 0, time.UTC)) {
		t.Errorf("local layout: %v, %v", got, err)
	}
	if got, _ := ParsePlayedAt("", berlin, now); !got.Equal(now) {
		t.Errorf("empty = %v, want now", got)
	}
	if got, err := ParsePlayedAt("2026-03-01", time.UTC, now); err != nil || got.Day() != 1 {
		t.Errorf("date only: %v, %v", got, err)
	}
}

// ---- ParseHeroes tests ----

func TestParseHeroes(t *testing.T) {
	cat := catalog.Default()
	got, err := ParseHeroes("Ana:60, Kiriko:40", cat)
	if err != nil {
		t.Fatalf("ParseHeroes: %v", err)
	}
	want := []HeroInput{{Hero: "Ana", Percentage: 60}, {Hero: "Kiriko", Percentage: 40}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	got, err = ParseHeroes("Soldier: 76", cat)
	if err != nil || got[0].Hero != "Soldier: 76" || got[0].Percentage != 100 {
		t.Errorf("colon in name: %+v, %v", got, err)
	}
	got, err = ParseHeroes("Soldier: 76:70,Ana:30", cat)
	if err != nil || got[0].Hero != "Soldier: 76" || got[0].Percentage != 70 {
		t.Errorf("colon in name with share: %+v, %v", got, err)
	}
	got, err = ParseHeroes("Mercy", cat)
	if err != nil || got[0].Percentage != 100 {
		t.Errorf("lone: %+v, %v", got, err)
	}

	for _, bad := range []string{"", "Ana:lots", "Ana,Kiriko:40"} {
		if _, err := ParseHeroes(bad, cat); err == nil {
			t.Errorf("ParseHeroes(%q) should fail", bad)
		}
	}
}

// ---- Decode tests ----

func TestDecode_JSONArrayAndObject(t *testing.T) {
	arr := `[{"map":"Ilios","result":"win","groupSize":1,"heroes":[{"hero":"Ana","percentage":100}]}]`
	obj := `{"matches":` + arr + `}`
	for _, doc := range []string{arr, obj} {
		got, err := Decode(strings.NewReader(doc), "batch.json")
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if len(got) != 1 || got[0].Map != "Ilios" || got[0].Heroes[0].Percentage != 100 {
			t.Errorf("decoded %+v", got)
		}
	}
}

func TestDecode_YAML(t *testing.T) {
	doc := `
matches:
  - map: Busan
    result: loss
    groupSize: 3
    playedAt: "2026-03-01 18:00"
    heroes:
      - {hero: Reinhardt, percentage: 100}
`
	got, err := Decode(strings.NewReader(doc), "batch.yaml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || got[0].Map != "Busan" || got[0].GroupSize != 3 || got[0].Heroes[0].Hero != "Reinhardt" {
		t.Errorf("decoded %+v", got)
	}
}
