package game

// schema declares how one game's raw records map onto the canonical
// weapon shape.
type schema struct {
	// containers are requirement sub-objects; the first present one is used.
	containers []string
	// spellings lists accepted keys inside the container per attribute.
	// Later spellings are read only when earlier ones are absent.
	spellings map[Attr][]string
	// topLevel fields are read from the record root when the container
	// yields no positive value.
	topLevel        map[Attr][]string
	categoryFields  []string
	defaultCategory string
}

func (s schema) normalizer(attrs []Attr) func(Raw) Weapon {
	return func(r Raw) Weapon {
		req, _ := firstPresent(r, s.containers...)
		reqs := make(Stats, len(attrs))
		for _, k := range attrs {
			names := s.spellings[k]
			if len(names) == 0 {
				names = []string{string(k)}
			}
			var n int
			if v, ok := firstPresent(req, names...); ok {
				n = intOf(v)
			}
			if n == 0 {
				if v, ok := firstPresent(r, s.topLevel[k]...); ok {
					n = intOf(v)
				}
			}
			reqs[k] = n
		}
		name := stringOr(r, "", "name")
		return Weapon{
			ID:           stringOr(r, name, "id"),
			Name:         name,
			Category:     stringOr(r, s.defaultCategory, s.categoryFields...),
			Requirements: reqs,
			TwoHandRule:  boolPtr(r, "twoHandRule"),
		}
	}
}

var soulsLabels = map[Attr]string{Str: "STR", Dex: "DEX", Int: "INT", Fth: "FTH"}

// Builtin returns freshly built adapters for every supported game, in
// display order.
func Builtin() []*Adapter {
	soulsAttrs := []Attr{Str, Dex, Int, Fth}
	standardTwoHand := TwoHand{Affected: Str, Multiplier: 1.5, Rounding: Floor}

	dsr := schema{
		containers: []string{"req"},
		spellings:  map[Attr][]string{Fth: {"fth", "fai"}},
		// DSR exports name the weapon class "type".
		categoryFields:  []string{"type", "category"},
		defaultCategory: "Weapon",
	}
	ds2 := schema{
		containers: []string{"req", "requirements"},
		topLevel: map[Attr][]string{
			Str: {"strength"},
			Dex: {"dexterity"},
			Int: {"intelligence"},
			Fth: {"faith"},
		},
		categoryFields:  []string{"category"},
		defaultCategory: "Weapon",
	}
	ds3 := schema{
		containers:      []string{"req", "requirements"},
		categoryFields:  []string{"category"},
		defaultCategory: "Weapon",
	}
	bb := schema{
		containers: []string{"req", "requirements"},
		spellings: map[Attr][]string{
			Str: {"str", "strength"},
			Skl: {"skl", "skill"},
			Bld: {"bld", "bloodtinge"},
			Arc: {"arc", "arcane"},
		},
		categoryFields:  []string{"category"},
		defaultCategory: "Trick Weapon",
	}
	er := schema{
		containers:      []string{"requirements", "req"},
		categoryFields:  []string{"category"},
		defaultCategory: "Weapon",
	}

	bbAttrs := []Attr{Str, Skl, Bld, Arc}
	erAttrs := []Attr{Str, Dex, Int, Fth, Arc}

	return []*Adapter{
		{
			ID:         "DSR",
			Label:      "Dark Souls Remastered",
			Attrs:      soulsAttrs,
			TwoHand:    standardTwoHand,
			AttrLabels: soulsLabels,
			Dataset:    "dsr",
			Normalize:  dsr.normalizer(soulsAttrs),
		},
		{
			ID:         "DS2",
			Label:      "Dark Souls II",
			Attrs:      soulsAttrs,
			TwoHand:    standardTwoHand,
			AttrLabels: soulsLabels,
			Dataset:    "ds2",
			Normalize:  ds2.normalizer(soulsAttrs),
		},
		{
			ID:         "DS3",
			Label:      "Dark Souls III",
			Attrs:      soulsAttrs,
			TwoHand:    standardTwoHand,
			AttrLabels: soulsLabels,
			Dataset:    "ds3",
			Normalize:  ds3.normalizer(soulsAttrs),
		},
		{
			ID:    "BB",
			Label: "Bloodborne",
			Attrs: bbAttrs,
			// Two-handing a trick weapon does not change its requirements.
			TwoHand:    TwoHand{Affected: Str, Multiplier: 1, Rounding: Floor},
			AttrLabels: map[Attr]string{Str: "Strength", Skl: "Skill", Bld: "Bloodtinge", Arc: "Arcane"},
			Dataset:    "bloodborne",
			Normalize:  bb.normalizer(bbAttrs),
		},
		{
			ID:         "ER",
			Label:      "Elden Ring",
			Attrs:      erAttrs,
			TwoHand:    standardTwoHand,
			AttrLabels: map[Attr]string{Str: "STR", Dex: "DEX", Int: "INT", Fth: "FAI", Arc: "ARC"},
			Dataset:    "eldenring",
			Normalize:  er.normalizer(erAttrs),
		},
	}
}
