package configs

import (
	"reflect"
	"testing"
)

func TestMergePrecedence(t *testing.T) {
	global := map[string]any{"frameRate": int64(24), "colorspace": "ACEScg"}
	project := map[string]any{"frameRate": int64(30)}
	user := map[string]any{"frameRate": int64(60)}

	tests := []struct {
		name   string
		layers []map[string]any
		want   int64
	}{
		{"AllLayers", []map[string]any{global, project, user}, 60},
		{"NoUser", []map[string]any{global, project, nil}, 30},
		{"DefaultsOnly", []map[string]any{global, nil, nil}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := Merge(tt.layers...)
			if merged["frameRate"] != tt.want {
				t.Errorf("frameRate = %v, want %d", merged["frameRate"], tt.want)
			}
			if merged["colorspace"] != "ACEScg" {
				t.Errorf("unrelated keys should pass through, got %v", merged["colorspace"])
			}
		})
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	nested := map[string]any{"render": map[string]any{"samples": int64(64)}}
	merged := Merge(nested)

	merged["render"].(map[string]any)["samples"] = int64(1)
	if nested["render"].(map[string]any)["samples"] != int64(64) {
		t.Error("Merge result should not share nested maps with its inputs")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"30", int64(30)},
		{"23.976", 23.976},
		{"true", true},
		{`"ACES 1.3"`, "ACES 1.3"},
		{"ACEScg", "ACEScg"},
		{"[1, 2]", []any{int64(1), int64(2)}},
		{"", ""},
		{"inf", "inf"},
		{"-inf", "-inf"},
		{"nan", "nan"},
		{"[1.0, nan]", "[1.0, nan]"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseValue(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValue(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}
