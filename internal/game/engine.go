package game

import "fmt"

// Verdict is the usability of one weapon for one stat block.
type Verdict int

const (
	OneHanded Verdict = iota
	TwoHanded
	Unusable
)

func (v Verdict) String() string {
	switch v {
	case OneHanded:
		return "1H"
	case TwoHanded:
		return "2H"
	case Unusable:
		return "NO"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Label is the human-readable form shown next to a weapon.
func (v Verdict) Label() string {
	switch v {
	case OneHanded:
		return "Usable (1H)"
	case TwoHanded:
		return "Usable (2H)"
	default:
		return "Not usable"
	}
}

// MarshalText encodes the verdict as "1H", "2H" or "NO".
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes "1H", "2H" or "NO".
func (v *Verdict) UnmarshalText(b []byte) error {
	switch string(b) {
	case "1H":
		*v = OneHanded
	case "2H":
		*v = TwoHanded
	case "NO":
		*v = Unusable
	default:
		return fmt.Errorf("unknown verdict: %q", b)
	}
	return nil
}

// meets reports whether p satisfies every requirement in req.
func meets(req, p Stats) bool {
	for k, need := range req {
		if p.Get(k) < need {
			return false
		}
	}
	return true
}

// Boost returns a copy of p with the rule's affected attribute multiplied
// and rounded.
func Boost(p Stats, rule TwoHand) Stats {
	out := p.Clone()
	out[rule.Affected] = rule.Rounding.Apply(float64(p.Get(rule.Affected)) * rule.Multiplier)
	return out
}

// Evaluate decides whether p can wield w under a's two-hand rule. It is
// pure: neither w nor p is modified.
func Evaluate(w Weapon, p Stats, a *Adapter) Verdict {
	if meets(w.Requirements, p) {
		return OneHanded
	}
	if !w.TwoHandable() || !a.TwoHand.Enabled() {
		return Unusable
	}
	if meets(w.Requirements, Boost(p, a.TwoHand)) {
		return TwoHanded
	}
	return Unusable
}
