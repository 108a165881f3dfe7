// package client sequences protocol transactions over a Transport. It owns
// no authentication; the transport collaborator supplies session cookies and
// performs the actual HTTP exchange.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/musicmanager"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/sjapi"
	"github.com/simon-weber/Unofficial-Google-Music-API/internal/webclient"
)

// Request is one outgoing HTTP exchange.
type Request struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
}

// Transport performs exchanges and supplies session cookies. Implementations
// handle authentication; the client never sees credentials.
type Transport interface {
	Execute(ctx context.Context, req *Request) ([]byte, error)
	Cookie(name string) string
}

// Outgoing calls are throttled so that bulk operations cannot hammer the
// service.
const (
	requestRate  = rate.Limit(5)
	requestBurst = 5
)

// Client is the convenience facade over the three protocol families.
type Client struct {
	transport Transport
	cfg       *shared.Config
	log       *log.Logger

	wc      *webclient.Protocol
	mm      *musicmanager.Protocol
	urls    sjapi.URLs
	limiter *rate.Limiter
}

// New builds a Client. The uploader identity comes from the config when both
// values are set, and is discovered from the machine otherwise.
func New(transport Transport, cfg *shared.Config, logger *log.Logger) (*Client, error) {
	identity := musicmanager.ClientIdentity{
		Address:  cfg.Client.Address,
		Hostname: cfg.Client.Hostname,
	}
	if identity.Address == "" || identity.Hostname == "" {
		discovered, err := musicmanager.NewClientIdentity()
		if err != nil {
			return nil, err
		}
		if identity.Address == "" {
			identity.Address = discovered.Address
		}
		if identity.Hostname == "" {
			identity.Hostname = discovered.Hostname
		}
	}

	urls := sjapi.DefaultURLs()
	if cfg.Services.SJBaseURL != "" {
		urls.Base = cfg.Services.SJBaseURL
	}

	return &Client{
		transport: transport,
		cfg:       cfg,
		log:       logger,
		wc:        webclient.New(logger),
		mm:        musicmanager.NewProtocol(identity),
		urls:      urls,
		limiter:   rate.NewLimiter(requestRate, requestBurst),
	}, nil
}

// URLs exposes the REST URL builders bound to this client's configuration.
func (c *Client) URLs() sjapi.URLs { return c.urls }

// doWebCall sends a web client transaction and decodes its response.
// Non-empty bodies travel as a form-encoded json parameter, the way the
// browser client submits them.
func (c *Client) doWebCall(ctx context.Context, tx *webclient.Transaction) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := &Request{
		Method: http.MethodPost,
		URL:    tx.URL(c.cfg.Services.WebBaseURL, c.transport.Cookie("xt")),
	}
	if tx.Request != nil {
		body, err := json.Marshal(tx.Request)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q request: %w", tx.Name, err)
		}
		req.Body = []byte(url.Values{"json": {string(body)}}.Encode())
		req.ContentType = "application/x-www-form-urlencoded"
	}

	c.log.Debug("web call", "name", tx.Name)
	raw, err := c.transport.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call %q failed: %w", tx.Name, err)
	}

	return webclient.DecodeResponse(ctx, tx, raw)
}

// doUploadCall posts a binary message to an upload service endpoint and
// returns the raw response bytes.
func (c *Client) doUploadCall(ctx context.Context, service string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	path, ok := musicmanager.ServiceURL(service)
	if !ok {
		return nil, fmt.Errorf("%w: unknown upload service %q", shared.ErrInvalidArgument, service)
	}

	c.log.Debug("upload call", "service", service)
	return c.transport.Execute(ctx, &Request{
		Method:      http.MethodPost,
		URL:         c.cfg.Services.AndroidURL + "/upsj/" + path,
		Body:        body,
		ContentType: "application/x-google-protobuf",
	})
}
