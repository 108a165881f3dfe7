package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// ParseError indicates that response text could not be parsed as JSON, even
// after lenient-token repair. Input retains the original text for diagnostics.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedFiletypeError indicates a local file whose extension is not in
// the supported upload set.
type UnsupportedFiletypeError struct {
	Filename  string
	Supported []string
}

func (e *UnsupportedFiletypeError) Error() string {
	return fmt.Sprintf("%q is not of a supported filetype; supported filetypes: %v", e.Filename, e.Supported)
}

// SchemaValidationError indicates a decoded response that does not conform to
// the schema declared for its call. This usually signals a server-side
// contract change.
type SchemaValidationError struct {
	Call string
	Err  error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("response for call %q failed schema validation: %v", e.Call, e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// UnknownKindError indicates a response whose kind discriminator is not in
// the dispatch table. Unknown kinds fail closed.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown response kind %q", e.Kind)
}

// MutationFailedError indicates a batch mutation where at least one entry
// reported a non-OK response code. Partial success is not modeled; the whole
// batch fails.
type MutationFailedError struct {
	Index int
	Code  string
}

func (e *MutationFailedError) Error() string {
	return fmt.Sprintf("mutation %d failed with response code %q", e.Index, e.Code)
}

// CallFailure indicates that the server reported a failed call (success=false
// in the response body). Usually caused by bad arguments to the server.
type CallFailure struct {
	Call     string
	Response []byte
}

func (e *CallFailure) Error() string {
	return fmt.Sprintf("call %q failed; server returned %s", e.Call, e.Response)
}
