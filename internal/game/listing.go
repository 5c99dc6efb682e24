package game

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Assessment pairs a weapon with its verdict for one stat block.
type Assessment struct {
	Weapon  Weapon  `json:"weapon"`
	Verdict Verdict `json:"verdict"`
}

// Group is the block-view bucket of one category.
type Group struct {
	Category string       `json:"category"`
	Items    []Assessment `json:"items"`
}

// Assess evaluates every weapon against p.
func Assess(weapons []Weapon, p Stats, a *Adapter) []Assessment {
	out := make([]Assessment, 0, len(weapons))
	for _, w := range weapons {
		out = append(out, Assessment{Weapon: w, Verdict: Evaluate(w, p, a)})
	}
	return out
}

// HideUnusable drops Unusable assessments.
func HideUnusable(items []Assessment) []Assessment {
	out := make([]Assessment, 0, len(items))
	for _, it := range items {
		if it.Verdict != Unusable {
			out = append(out, it)
		}
	}
	return out
}

// CategoryOrder ranks categories by first appearance in the dataset.
func CategoryOrder(weapons []Weapon) map[string]int {
	ord := make(map[string]int)
	for _, w := range weapons {
		if _, ok := ord[w.Category]; !ok {
			ord[w.Category] = len(ord)
		}
	}
	return ord
}

func rank(ord map[string]int, c string) int {
	if r, ok := ord[c]; ok {
		return r
	}
	return len(ord)
}

// SortList orders items by verdict, then category order, then name.
func SortList(items []Assessment, ord map[string]int) []Assessment {
	out := append([]Assessment(nil), items...)
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Verdict != b.Verdict {
			return a.Verdict < b.Verdict
		}
		if ra, rb := rank(ord, a.Weapon.Category), rank(ord, b.Weapon.Category); ra != rb {
			return ra < rb
		}
		return col.CompareString(a.Weapon.Name, b.Weapon.Name) < 0
	})
	return out
}

// GroupByCategory buckets items by category in dataset order; inside a
// bucket items are ordered by verdict, then name. Blank categories are
// grouped under "Weapon".
func GroupByCategory(items []Assessment, ord map[string]int) []Group {
	idx := make(map[string]int)
	var groups []Group
	for _, it := range items {
		key := it.Weapon.Category
		if key == "" {
			key = "Weapon"
		}
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, Group{Category: key})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return rank(ord, groups[i].Category) < rank(ord, groups[j].Category)
	})
	col := collate.New(language.English)
	for _, g := range groups {
		sort.SliceStable(g.Items, func(i, j int) bool {
			a, b := g.Items[i], g.Items[j]
			if a.Verdict != b.Verdict {
				return a.Verdict < b.Verdict
			}
			return col.CompareString(a.Weapon.Name, b.Weapon.Name) < 0
		})
	}
	return groups
}
