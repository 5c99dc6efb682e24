package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Rounding selects how a boosted attribute is truncated.
type Rounding string

const (
	Floor Rounding = "floor"
	Round Rounding = "round"
	Ceil  Rounding = "ceil"
)

// Apply rounds x according to r. Unknown modes floor.
func (r Rounding) Apply(x float64) int {
	switch r {
	case Ceil:
		return int(math.Ceil(x))
	case Round:
		return int(math.Round(x))
	default:
		return int(math.Floor(x))
	}
}

// TwoHand describes a game's two-handing boost. A multiplier of exactly 1
// means the game has no two-hand bonus.
type TwoHand struct {
	Affected   Attr     `json:"affected" validate:"required"`
	Multiplier float64  `json:"multiplier" validate:"gte=1"`
	Rounding   Rounding `json:"rounding" validate:"oneof=floor round ceil"`
}

// Enabled reports whether the rule changes anything.
func (t TwoHand) Enabled() bool {
	return t.Multiplier != 1
}

// Adapter is the per-game configuration bundle. Adapters are built once
// and never mutated.
type Adapter struct {
	ID         string          `json:"id" validate:"required"`
	Label      string          `json:"label" validate:"required"`
	Attrs      []Attr          `json:"attrs" validate:"min=1,dive,required"`
	TwoHand    TwoHand         `json:"twoHand"`
	AttrLabels map[Attr]string `json:"attrLabels"`
	// Dataset is the basename of the raw record array for this game.
	Dataset   string                `json:"-" validate:"required"`
	Normalize func(raw Raw) Weapon `json:"-" validate:"required"`
}

var validate = validator.New()

// Validate checks the adapter's structural invariants.
func (a *Adapter) Validate() error {
	if a == nil {
		return errors.New("nil adapter")
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("adapter %q: %w", a.ID, err)
	}
	for _, k := range a.Attrs {
		if !k.Valid() {
			return fmt.Errorf("adapter %q: unknown attribute %q", a.ID, k)
		}
	}
	if !a.Has(a.TwoHand.Affected) {
		return fmt.Errorf("adapter %q: two-hand attribute %q is not declared", a.ID, a.TwoHand.Affected)
	}
	for k := range a.AttrLabels {
		if !a.Has(k) {
			return fmt.Errorf("adapter %q: label for undeclared attribute %q", a.ID, k)
		}
	}
	return nil
}

// Has reports whether k is one of the adapter's attributes.
func (a *Adapter) Has(k Attr) bool {
	for _, x := range a.Attrs {
		if x == k {
			return true
		}
	}
	return false
}

// LabelFor returns the display label for k, falling back to the key.
func (a *Adapter) LabelFor(k Attr) string {
	if l, ok := a.AttrLabels[k]; ok && l != "" {
		return l
	}
	return string(k)
}

// NormalizeAll maps every raw record through the adapter.
func (a *Adapter) NormalizeAll(raws []Raw) []Weapon {
	out := make([]Weapon, 0, len(raws))
	for _, r := range raws {
		out = append(out, a.Normalize(r))
	}
	return out
}
