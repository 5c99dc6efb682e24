package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Attr is an attribute key from the fixed universe shared by every game.
type Attr string

const (
	Str Attr = "str"
	Dex Attr = "dex"
	Int Attr = "int"
	Fth Attr = "fth"
	Arc Attr = "arc"
	Skl Attr = "skl"
	Bld Attr = "bld"
)

// AllAttrs lists the attribute universe in canonical order.
var AllAttrs = []Attr{Str, Dex, Int, Fth, Arc, Skl, Bld}

// Valid reports whether a is part of the attribute universe.
func (a Attr) Valid() bool {
	for _, k := range AllAttrs {
		if k == a {
			return true
		}
	}
	return false
}

// Stats is a partial stat block. It is used both for player attributes
// and for requirement thresholds; absent keys read as 0.
type Stats map[Attr]int

// Get returns the value for k, or 0 when k is absent.
func (s Stats) Get(k Attr) int {
	if s == nil {
		return 0
	}
	return s[k]
}

// Clone returns an independent copy of s.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Only returns a copy of s restricted to attrs. Keys in attrs that s lacks
// are filled with 0.
func (s Stats) Only(attrs []Attr) Stats {
	out := make(Stats, len(attrs))
	for _, k := range attrs {
		out[k] = s.Get(k)
	}
	return out
}

// ParseStats parses "str=10,dex=12" into a stat block.
func ParseStats(in string) (Stats, error) {
	out := Stats{}
	in = strings.TrimSpace(in)
	if in == "" {
		return out, nil
	}
	for _, part := range strings.Split(in, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid stat %q: want key=value", part)
		}
		k := Attr(strings.ToLower(strings.TrimSpace(kv[0])))
		if !k.Valid() {
			return nil, fmt.Errorf("unknown attribute: %s", kv[0])
		}
		v, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", k, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative value for %s: %d", k, v)
		}
		out[k] = v
	}
	return out, nil
}

// Weapon is the canonical armament record produced by an adapter.
type Weapon struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Requirements Stats  `json:"requirements"`
	// TwoHandRule is nil when the item defers to the game's rule. An
	// explicit false means the item never benefits from two-handing.
	TwoHandRule *bool `json:"twoHandRule,omitempty"`
}

// TwoHandable reports whether the item may benefit from the game's
// two-hand rule.
func (w Weapon) TwoHandable() bool {
	return w.TwoHandRule == nil || *w.TwoHandRule
}
