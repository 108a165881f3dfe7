package webclient

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	goskema "github.com/reoring/goskema"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/jsarray"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

// DecodeResponse turns a raw response body into a validated map.
//
// Every body runs through the lenient-token repair first; strict JSON passes
// through unchanged. A response carrying success=false means the server
// rejected the call, surfaced as [shared.CallFailure] before any schema
// check. When the transaction declares a response schema, a mismatch is a
// [shared.SchemaValidationError].
func DecodeResponse(ctx context.Context, t *Transaction, raw []byte) (map[string]any, error) {
	repaired := jsarray.ToJSON(string(raw))

	var m map[string]any
	dec := json.NewDecoder(strings.NewReader(repaired))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, &shared.ParseError{Input: string(raw), Err: err}
	}

	if success, ok := m["success"].(bool); ok && !success {
		return nil, &shared.CallFailure{Call: t.Name, Response: raw}
	}

	if t.Response == nil {
		return m, nil
	}

	validated, err := goskema.ParseFrom(ctx, t.Response, goskema.JSONBytes([]byte(repaired)))
	if err != nil {
		return nil, &shared.SchemaValidationError{Call: t.Name, Err: err}
	}
	return validated, nil
}
