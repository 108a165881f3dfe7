// package jsarray repairs the lenient JSON-like interchange format used by
// the web client ("jsarray"): a format that elides values between repeated
// separators, e.g. [1,,2] meaning [1,null,2].
package jsarray

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

// ToJSON returns a strict JSON string for a jsarray string.
//
// The input is split into lexical tokens; a null token is inserted wherever a
// value was elided (between two commas, or between an opening bracket and a
// comma). The rule is token-local: quoted string contents are opaque, so
// commas inside string literals are never candidates for repair.
//
// Valid JSON passes through unchanged apart from whitespace.
func ToJSON(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	prev := ""
	for _, tok := range tokenize(s) {
		if (prev == "," && tok == ",") || (prev == "[" && tok == ",") {
			out.WriteString("null")
		}
		out.WriteString(tok)
		prev = tok
	}

	return out.String()
}

// Loads repairs a jsarray payload and parses it as JSON.
//
// A payload that still fails to parse after repair yields a
// [shared.ParseError] carrying the original input.
func Loads(data []byte) (any, error) {
	repaired := ToJSON(string(data))

	var v any
	dec := json.NewDecoder(strings.NewReader(repaired))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, &shared.ParseError{Input: string(data), Err: err}
	}

	return v, nil
}

// tokenize splits s into lexical tokens: quoted strings (kept whole,
// including escapes), number/word runs, and single punctuation characters.
// Whitespace is dropped; it carries no meaning in the interchange format.
func tokenize(s string) []string {
	var tokens []string

	i := 0
	for i < len(s) {
		c := s[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '"' || c == '\'':
			quote := c
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' && j+1 < len(s) {
					j += 2
					continue
				}
				if s[j] == quote {
					j++
					break
				}
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j

		case isWordByte(c):
			j := i
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j

		default:
			tokens = append(tokens, string(c))
			i++
		}
	}

	return tokens
}

// isWordByte reports whether b can appear in a number or literal token.
func isWordByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b == '-' || b == '+' || b == '.' || b == '_':
		return true
	}
	return false
}
