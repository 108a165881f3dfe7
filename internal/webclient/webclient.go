// package webclient builds transactions for the browser-facing service
// endpoints. A transaction pairs a request body with the URL rule and
// response schema for one named call; sending it is the caller's concern.
package webclient

import (
	"net/url"

	goskema "github.com/reoring/goskema"
)

// Transaction is one prepared web client call.
type Transaction struct {
	// Name is the endpoint path segment, as it appears in the request URL.
	Name string

	// Request is the JSON body to send, or nil for an empty body.
	Request any

	// Response validates the decoded response. nil leaves the response
	// unvalidated.
	Response goskema.Schema[map[string]any]

	// streaming marks the one call that bypasses the services suburl and
	// session token. songID rides in its querystring.
	streaming bool
	songID    string
}

// URL returns the full request URL. Most calls go to
// <base>services/<name>?u=0&xt=<xt>; the streaming call goes to <base><name>
// with a fixed pt=e suffix and no session token.
func (t *Transaction) URL(base, xt string) string {
	if t.streaming {
		u := base + t.Name + "?u=0&pt=e"
		if t.songID != "" {
			u += "&songid=" + url.QueryEscape(t.songID)
		}
		return u
	}
	return base + "services/" + t.Name + "?u=0&xt=" + url.QueryEscape(xt)
}
