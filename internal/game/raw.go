package game

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Raw is one record exactly as the dataset producer emitted it.
type Raw = gjson.Result

// ParseRaw parses a single JSON record. Invalid JSON yields an empty
// record rather than an error.
func ParseRaw(doc string) Raw {
	return gjson.Parse(doc)
}

// field returns the named child of r without interpreting gjson path
// syntax, so keys containing dots or wildcards are read literally.
func field(r Raw, name string) Raw {
	if !r.IsObject() {
		return Raw{}
	}
	var out Raw
	r.ForEach(func(k, v gjson.Result) bool {
		if k.String() == name {
			out = v
			return false
		}
		return true
	})
	return out
}

// intOf reads v as a non-negative integer. Anything else is 0.
func intOf(v Raw) int {
	switch v.Type {
	case gjson.Number:
		if v.Num < 0 || v.Num > math.MaxInt32 {
			return 0
		}
		return int(v.Num)
	case gjson.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || !(n >= 0) || n > math.MaxInt32 {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}

// present reports whether v carries a usable value; JSON null counts as
// absent.
func present(v Raw) bool {
	return v.Exists() && v.Type != gjson.Null
}

// firstPresent returns the first present child of r among names.
func firstPresent(r Raw, names ...string) (Raw, bool) {
	for _, n := range names {
		if v := field(r, n); present(v) {
			return v, true
		}
	}
	return Raw{}, false
}

// stringOr returns the first non-empty string or number field among
// names, or def.
func stringOr(r Raw, def string, names ...string) string {
	for _, n := range names {
		v := field(r, n)
		if v.Type != gjson.String && v.Type != gjson.Number {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return def
}

// boolPtr returns the field as *bool when it is a JSON boolean.
func boolPtr(r Raw, name string) *bool {
	v := field(r, name)
	if v.Type != gjson.True && v.Type != gjson.False {
		return nil
	}
	b := v.Bool()
	return &b
}
