package configs

import (
	"math"

	"github.com/BurntSushi/toml"
)

// Merge flattens sparse setting layers left to right; a later layer wins
// per key. Values are deep-copied so the result shares nothing with its
// inputs.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	case []map[string]any:
		s := make([]map[string]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner).(map[string]any)
		}
		return s
	default:
		return v
	}
}

// ParseValue interprets a command-line value the way the settings document
// would: 30 is an integer, 23.976 a float, true a bool, [1, 2] an array.
// Anything that isn't a TOML literal stays a string, and so do inf and nan,
// which JSON output cannot carry.
func ParseValue(raw string) any {
	var doc struct {
		V any `toml:"v"`
	}
	if _, err := toml.Decode("v = "+raw, &doc); err != nil || doc.V == nil || !finite(doc.V) {
		return raw
	}
	return doc.V
}

func finite(v any) bool {
	switch t := v.(type) {
	case float64:
		return !math.IsInf(t, 0) && !math.IsNaN(t)
	case []any:
		for _, inner := range t {
			if !finite(inner) {
				return false
			}
		}
	case map[string]any:
		for _, inner := range t {
			if !finite(inner) {
				return false
			}
		}
	case []map[string]any:
		for _, inner := range t {
			if !finite(inner) {
				return false
			}
		}
	}
	return true
}
