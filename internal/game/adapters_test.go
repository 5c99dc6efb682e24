package game

import (
	"strings"
	"testing"
)

func builtinByID(t *testing.T, id string) *Adapter {
	t.Helper()
	for _, a := range Builtin() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("no builtin adapter %s", id)
	return nil
}

func TestBuiltin_Valid(t *testing.T) {
	want := []string{"DSR", "DS2", "DS3", "BB", "ER"}
	got := Builtin()
	if len(got) != len(want) {
		t.Fatalf("Expected %d adapters, got %d", len(want), len(got))
	}
	for i, a := range got {
		if a.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], a.ID)
		}
		if err := a.Validate(); err != nil {
			t.Errorf("%s: %v", a.ID, err)
		}
	}
}

func TestNormalize_DSRFaithSpellings(t *testing.T) {
	a := builtinByID(t, "DSR")

	w := a.Normalize(ParseRaw(`{"name":"Blessed Gloves","req":{"str":12,"fai":18}}`))
	if w.Requirements[Fth] != 18 {
		t.Errorf("Expected fai fallback 18, got %d", w.Requirements[Fth])
	}

	w = a.Normalize(ParseRaw(`{"name":"Talisman","req":{"fth":14,"fai":99}}`))
	if w.Requirements[Fth] != 14 {
		t.Errorf("Expected canonical fth 14 to win, got %d", w.Requirements[Fth])
	}

	w = a.Normalize(ParseRaw(`{"name":"Zero","req":{"fth":0,"fai":30}}`))
	if w.Requirements[Fth] != 0 {
		t.Errorf("Expected present canonical fth 0 to win, got %d", w.Requirements[Fth])
	}
}

func TestNormalize_DSRCategoryAndOverride(t *testing.T) {
	a := builtinByID(t, "DSR")

	w := a.Normalize(ParseRaw(`{"id":"cat","name":"Catalyst","type":"Catalyst","category":"Other","twoHandRule":false}`))
	if w.ID != "cat" {
		t.Errorf("Expected id 'cat', got %q", w.ID)
	}
	if w.Category != "Catalyst" {
		t.Errorf("Expected type to win over category, got %q", w.Category)
	}
	if w.TwoHandRule == nil || *w.TwoHandRule {
		t.Errorf("Expected explicit false override, got %v", w.TwoHandRule)
	}
	if w.TwoHandable() {
		t.Error("Expected weapon not to be two-handable")
	}

	w = a.Normalize(ParseRaw(`{"name":"Dagger","category":"Dagger"}`))
	if w.Category != "Dagger" {
		t.Errorf("Expected category fallback, got %q", w.Category)
	}
	if w.ID != "Dagger" {
		t.Errorf("Expected id to fall back to name, got %q", w.ID)
	}
	if w.TwoHandRule != nil {
		t.Errorf("Expected no override, got %v", *w.TwoHandRule)
	}

	w = a.Normalize(ParseRaw(`{"name":"Thing"}`))
	if w.Category != "Weapon" {
		t.Errorf("Expected default category 'Weapon', got %q", w.Category)
	}
}

func TestNormalize_DS2Spellings(t *testing.T) {
	a := builtinByID(t, "DS2")

	w := a.Normalize(ParseRaw(`{"name":"Mace","strength":12,"dexterity":"8"}`))
	if w.Requirements[Str] != 12 || w.Requirements[Dex] != 8 {
		t.Errorf("Expected top-level long names 12/8, got %v", w.Requirements)
	}

	w = a.Normalize(ParseRaw(`{"name":"Sword","requirements":{"str":16,"dex":10},"strength":40}`))
	if w.Requirements[Str] != 16 {
		t.Errorf("Expected container value 16, got %d", w.Requirements[Str])
	}

	w = a.Normalize(ParseRaw(`{"name":"Sword","req":{"str":10},"requirements":{"str":99}}`))
	if w.Requirements[Str] != 10 {
		t.Errorf("Expected req container to win, got %d", w.Requirements[Str])
	}
}

func TestNormalize_BloodborneDefaults(t *testing.T) {
	a := builtinByID(t, "BB")

	w := a.Normalize(ParseRaw(`{"name":"Hunter Axe","req":{"strength":9,"skill":8,"bloodtinge":0,"arcane":3}}`))
	if w.Category != "Trick Weapon" {
		t.Errorf("Expected default category 'Trick Weapon', got %q", w.Category)
	}
	want := Stats{Str: 9, Skl: 8, Bld: 0, Arc: 3}
	for k, v := range want {
		if w.Requirements[k] != v {
			t.Errorf("%s: expected %d, got %d", k, v, w.Requirements[k])
		}
	}
	if _, ok := w.Requirements[Dex]; ok {
		t.Error("Expected dex to be absent for Bloodborne")
	}
	if a.TwoHand.Enabled() {
		t.Error("Expected Bloodborne to have no two-hand bonus")
	}
}

func TestNormalize_EldenRingPrefersRequirements(t *testing.T) {
	a := builtinByID(t, "ER")
	w := a.Normalize(ParseRaw(`{"id":4000000,"name":"Zweihander","requirements":{"str":19,"dex":11,"arc":2},"req":{"str":1}}`))
	if w.ID != "4000000" {
		t.Errorf("Expected numeric id as string, got %q", w.ID)
	}
	if w.Requirements[Str] != 19 || w.Requirements[Arc] != 2 {
		t.Errorf("Expected requirements container, got %v", w.Requirements)
	}
}

func TestNormalize_MalformedRecords(t *testing.T) {
	docs := []string{
		``,
		`not json`,
		`[]`,
		`null`,
		`{}`,
		`{"req":"oops"}`,
		`{"req":{"str":-4,"dex":null,"int":"abc","fth":true}}`,
		`{"name":42,"category":{"x":1},"twoHandRule":"no"}`,
	}
	for _, a := range Builtin() {
		for _, doc := range docs {
			w := a.Normalize(ParseRaw(doc))
			for _, k := range a.Attrs {
				if v, ok := w.Requirements[k]; !ok || v != 0 {
					t.Errorf("%s %q: expected %s=0, got %d (present=%v)", a.ID, doc, k, v, ok)
				}
			}
			if w.Category == "" {
				t.Errorf("%s %q: expected default category", a.ID, doc)
			}
			if w.TwoHandRule != nil {
				t.Errorf("%s %q: expected no override", a.ID, doc)
			}
		}
	}
}

func TestNormalize_LiteralKeys(t *testing.T) {
	a := builtinByID(t, "DS3")
	// gjson path syntax in keys must not be interpreted.
	w := a.Normalize(ParseRaw(`{"name":"x","req":{"s*r":40,"str":3}}`))
	if w.Requirements[Str] != 3 {
		t.Errorf("Expected str 3, got %d", w.Requirements[Str])
	}
}

func TestAdapterValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(a *Adapter)
		want   string
	}{
		{"affected not declared", func(a *Adapter) { a.TwoHand.Affected = Arc }, "not declared"},
		{"multiplier below one", func(a *Adapter) { a.TwoHand.Multiplier = 0.5 }, "Multiplier"},
		{"unknown rounding", func(a *Adapter) { a.TwoHand.Rounding = "bankers" }, "Rounding"},
		{"no attributes", func(a *Adapter) { a.Attrs = nil }, "Attrs"},
		{"unknown attribute", func(a *Adapter) { a.Attrs = append(a.Attrs, "luck") }, "unknown attribute"},
		{"label for undeclared attribute", func(a *Adapter) { a.AttrLabels = map[Attr]string{Bld: "Blood"} }, "undeclared"},
		{"missing normalize", func(a *Adapter) { a.Normalize = nil }, "Normalize"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := testAdapter(1.5, Floor)
			tc.mutate(a)
			err := a.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
		})
	}
	if err := testAdapter(1, Round).Validate(); err != nil {
		t.Errorf("Expected valid adapter, got %v", err)
	}
}

func TestAdapterLabelFor(t *testing.T) {
	a := builtinByID(t, "ER")
	if got := a.LabelFor(Fth); got != "FAI" {
		t.Errorf("Expected FAI, got %q", got)
	}
	if got := testAdapter(1, Floor).LabelFor(Dex); got != "dex" {
		t.Errorf("Expected key fallback 'dex', got %q", got)
	}
}
