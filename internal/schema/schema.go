// package schema compiles the field expectation registry into validation
// schemas for server responses. The compiled schemas are closed-world:
// a response key the registry does not know is a validation failure.
package schema

import (
	"sort"

	goskema "github.com/reoring/goskema"
	g "github.com/reoring/goskema/dsl"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/expectations"
)

// Song returns the schema for a single library song record. Every registry
// field is typed per its expectation; fields marked optional may be absent;
// unknown keys are rejected.
func Song() goskema.Schema[map[string]any] {
	b := g.Object()

	var required []string
	for name, e := range expectations.All() {
		b.Field(name, adapterFor(e))
		if !e.Optional {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	return b.Require(required...).UnknownStrict().MustBuild()
}

// SongArray returns the schema for an array of song records.
func SongArray() goskema.Schema[[]map[string]any] {
	return g.Array(Song())
}

// SongAdapter returns the song schema as a field adapter, for embedding a
// song record inside an envelope schema.
func SongAdapter() g.AnyAdapter {
	return g.SchemaOf(Song())
}

// SongArrayAdapter returns the song array schema as a field adapter.
func SongArrayAdapter() g.AnyAdapter {
	return g.ArrayOf(Song())
}

// adapterFor maps a field expectation to its wire-type adapter. A field
// derived from another resolves to the source field's type.
func adapterFor(e expectations.Expectation) g.AnyAdapter {
	t := e.Type
	if e.DependsOn != "" {
		if src, ok := expectations.Get(e.DependsOn); ok {
			t = src.Type
		}
	}

	switch t {
	case expectations.Integer:
		return g.IntOf[int]()
	case expectations.Number:
		return g.FloatOf[float64]()
	case expectations.Boolean:
		return g.BoolOf[bool]()
	default:
		return g.StringOf[string]()
	}
}
