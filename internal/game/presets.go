package game

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CustomPreset is reported by Match when no preset fits.
const CustomPreset = "custom"

//go:embed presets.yaml
var defaultPresetsYAML []byte

// Preset is a named starting stat block.
type Preset struct {
	Name  string `yaml:"name" json:"name"`
	Stats Stats  `yaml:"stats" json:"stats"`
}

// PresetTable holds ordered presets per game id. It is read-only once
// loaded.
type PresetTable struct {
	byGame map[string][]Preset
}

// LoadPresets decodes a YAML preset table.
func LoadPresets(r io.Reader) (*PresetTable, error) {
	var m map[string][]Preset
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	for id, list := range m {
		for _, p := range list {
			if p.Name == "" {
				return nil, fmt.Errorf("preset in %s has no name", id)
			}
			for k, v := range p.Stats {
				if !k.Valid() {
					return nil, fmt.Errorf("preset %s/%s: unknown attribute %q", id, p.Name, k)
				}
				if v < 0 {
					return nil, fmt.Errorf("preset %s/%s: negative %s", id, p.Name, k)
				}
			}
		}
	}
	return &PresetTable{byGame: m}, nil
}

// LoadPresetsFile reads a preset table from a YAML file.
func LoadPresetsFile(path string) (*PresetTable, error) {
	b, err := os.ReadFile(filepath.Clean(path)) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, err
	}
	return LoadPresets(bytes.NewReader(b))
}

// DefaultPresets returns the built-in starting classes.
func DefaultPresets() *PresetTable {
	t, err := LoadPresets(bytes.NewReader(defaultPresetsYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded presets: %v", err))
	}
	return t
}

// For returns the presets of game id in declaration order. Unknown ids
// yield an empty list.
func (t *PresetTable) For(id string) []Preset {
	if t == nil {
		return nil
	}
	list := t.byGame[id]
	out := make([]Preset, len(list))
	copy(out, list)
	return out
}

// Find returns the named preset of game id.
func (t *PresetTable) Find(id, name string) (Preset, bool) {
	for _, p := range t.For(id) {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Match returns the first preset of a's game that equals p on a's
// attributes, or CustomPreset. Keys a does not declare are ignored.
func (t *PresetTable) Match(a *Adapter, p Stats) string {
	for _, pr := range t.For(a.ID) {
		if sameOn(a.Attrs, pr.Stats, p) {
			return pr.Name
		}
	}
	return CustomPreset
}

// Apply returns a copy of p with a's attributes taken from the named
// preset. Other keys are left untouched.
func (t *PresetTable) Apply(a *Adapter, p Stats, name string) (Stats, bool) {
	pr, ok := t.Find(a.ID, name)
	if !ok {
		return p, false
	}
	out := p.Clone()
	for _, k := range a.Attrs {
		out[k] = pr.Stats.Get(k)
	}
	return out, true
}

func sameOn(attrs []Attr, x, y Stats) bool {
	for _, k := range attrs {
		if x.Get(k) != y.Get(k) {
			return false
		}
	}
	return true
}
