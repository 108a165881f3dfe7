// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/client"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

// MockResponse is one scripted transport answer.
type MockResponse struct {
	Body []byte
	Err  error
}

// MockTransport is a test double for [client.Transport]. Responses are
// consumed in order; every executed request is recorded for assertions.
type MockTransport struct {
	Responses []MockResponse
	Cookies   map[string]string
	Requests  []client.Request
}

func (m *MockTransport) Execute(ctx context.Context, req *client.Request) ([]byte, error) {
	m.Requests = append(m.Requests, *req)

	if len(m.Responses) == 0 {
		return nil, errors.New("no scripted response left")
	}
	r := m.Responses[0]
	m.Responses = m.Responses[1:]
	return r.Body, r.Err
}

func (m *MockTransport) Cookie(name string) string { return m.Cookies[name] }

// NewConfig returns the default config for tests.
func NewConfig() *shared.Config {
	return shared.DefaultConfig()
}

// NewLogger returns a logger that discards all output.
func NewLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}
