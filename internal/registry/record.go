package registry

import (
	"time"
)

// ProjectRecord is one project in the registry.
type ProjectRecord struct {
	// Code is the stable identifier. It never changes and is never reissued.
	Code string `toml:"code" json:"code"`
	UUID string `toml:"uuid" json:"uuid"`
	Name string `toml:"name" json:"name"`

	CreatedAt time.Time `toml:"created_at" json:"created_at"`
	// Seq orders records created within the same clock tick.
	Seq int64 `toml:"seq" json:"seq"`

	// Path is the storage folder relative to the projects root. Empty means Code.
	Path      string         `toml:"path,omitempty" json:"path,omitempty"`
	Overrides map[string]any `toml:"overrides,omitempty" json:"overrides,omitempty"`
}

// StoragePath returns the record's folder relative to the projects root.
func (r ProjectRecord) StoragePath() string {
	if r.Path == "" {
		return r.Code
	}
	return r.Path
}

// Clone returns a copy that shares no maps with r.
func (r ProjectRecord) Clone() ProjectRecord {
	out := r
	out.Overrides = make(map[string]any, len(r.Overrides))
	for k, v := range r.Overrides {
		out.Overrides[k] = cloneValue(v)
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
	default:
		return v
	}
}

// document is the on-disk registry.
type document struct {
	Version int   `toml:"version"`
	NextSeq int64 `toml:"next_seq"`
	// Issued is the tombstone set: every code ever created, deleted or not.
	Issued   []string        `toml:"issued"`
	Projects []ProjectRecord `toml:"projects,omitempty"`
}

const documentVersion = 1
