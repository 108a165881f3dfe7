// package expectations declares what the server is known to send for each
// metadata field of a library song: its type, whether we may change it,
// which values it accepts, and whether it is derived from another field.
package expectations

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// ValueType is the wire type of a metadata field.
type ValueType string

const (
	String  ValueType = "string"
	Integer ValueType = "integer"
	Number  ValueType = "number"
	Boolean ValueType = "boolean"
)

// Expectation describes a single metadata field.
type Expectation struct {
	// Name is the canonical remote field name.
	Name string

	// Type is the wire type the server sends.
	Type ValueType

	// Mutable reports whether the field may be changed by a metadata
	// modification call.
	Mutable bool

	// AllowedValues restricts the values a mutation may send. Empty means
	// no restriction.
	AllowedValues []any

	// Volatile reports whether the server may change the value on its own.
	Volatile bool

	// DependsOn names the field this one is derived from, or is empty.
	// Transform maps the source field's value to this field's value; it is
	// set exactly when DependsOn is.
	DependsOn string
	Transform func(string) string

	// Optional reports whether the server may omit the field.
	Optional bool
}

// Allows reports whether v is acceptable for this field. Fields without an
// AllowedValues restriction accept anything. Numeric values compare by value,
// so a json.Number 5 matches an allowed int 5.
func (e Expectation) Allows(v any) bool {
	if len(e.AllowedValues) == 0 {
		return true
	}
	for _, allowed := range e.AllowedValues {
		if valuesEqual(allowed, v) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func identity(s string) string { return s }

// registry maps canonical field name to its expectation. Field names are
// server response keys; lookups are exact, with no prefix fallback.
var registry = map[string]Expectation{
	// 0 = no thumb, 1 = down thumb, 5 = up thumb.
	"rating": {Name: "rating", Type: Integer, Mutable: true, AllowedValues: []any{0, 1, 5}},

	"composer":    {Name: "composer", Type: String, Mutable: true},
	"album":       {Name: "album", Type: String, Mutable: true},
	"albumArtist": {Name: "albumArtist", Type: String, Mutable: true},
	"genre":       {Name: "genre", Type: String, Mutable: true},
	"name":        {Name: "name", Type: String, Mutable: true},
	"artist":      {Name: "artist", Type: String, Mutable: true},

	"disc":        {Name: "disc", Type: Integer, Mutable: true, Optional: true},
	"year":        {Name: "year", Type: Integer, Mutable: true, Optional: true},
	"track":       {Name: "track", Type: Integer, Mutable: true, Optional: true},
	"totalTracks": {Name: "totalTracks", Type: Integer, Mutable: true, Optional: true},
	"playCount":   {Name: "playCount", Type: Integer, Mutable: true},
	"totalDiscs":  {Name: "totalDiscs", Type: Integer, Mutable: true, Optional: true},

	// durationMillis can technically be changed, but doing so corrupts
	// playback length, so it is treated as immutable.
	"durationMillis": {Name: "durationMillis", Type: Integer},
	"comment":        {Name: "comment", Type: String},
	"id":             {Name: "id", Type: String},
	"deleted":        {Name: "deleted", Type: Boolean},
	"creationDate":   {Name: "creationDate", Type: Integer},
	// Only sent when the song has album art.
	"albumArtUrl":   {Name: "albumArtUrl", Type: String, Optional: true},
	"type":          {Name: "type", Type: Integer},
	"beatsPerMinute": {Name: "beatsPerMinute", Type: Integer},
	"url":           {Name: "url", Type: String},
	// Only sent when the song appears in the context of a playlist.
	"playlistEntryId": {Name: "playlistEntryId", Type: String, Optional: true},

	"title":           {Name: "title", Type: String, Mutable: true, DependsOn: "name", Transform: identity},
	"titleNorm":       {Name: "titleNorm", Type: String, Mutable: true, DependsOn: "name", Transform: strings.ToLower},
	"albumArtistNorm": {Name: "albumArtistNorm", Type: String, Mutable: true, DependsOn: "albumArtist", Transform: strings.ToLower},
	"albumNorm":       {Name: "albumNorm", Type: String, Mutable: true, DependsOn: "album", Transform: strings.ToLower},
	"artistNorm":      {Name: "artistNorm", Type: String, Mutable: true, DependsOn: "artist", Transform: strings.ToLower},

	// The server updates this on playback; we never send it.
	"lastPlayed": {Name: "lastPlayed", Type: Integer, Volatile: true},
}

// Get returns the expectation for the given field name.
func Get(name string) (Expectation, bool) {
	e, ok := registry[name]
	return e, ok
}

// All returns a copy of the full registry.
func All() map[string]Expectation {
	out := make(map[string]Expectation, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

// Names returns all known field names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
