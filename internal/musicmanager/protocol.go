package musicmanager

// Protocol holds the pre-filled message templates for one client identity.
// Every outgoing message is a copy of its seed; seeds are never handed out
// directly, so one call can never leak state into the next.
type Protocol struct {
	identity ClientIdentity

	uploadAuthSeed  UploadAuth
	clientStateSeed ClientState
	metadataSeed    MetadataRequest
}

// NewProtocol seeds the templates from the given identity.
func NewProtocol(id ClientIdentity) *Protocol {
	return &Protocol{
		identity:        id,
		uploadAuthSeed:  UploadAuth{Address: id.Address, Hostname: id.Hostname},
		clientStateSeed: ClientState{Address: id.Address},
		metadataSeed:    MetadataRequest{Address: id.Address},
	}
}

// Identity returns the identity the templates were seeded with.
func (p *Protocol) Identity() ClientIdentity { return p.identity }

// UploadAuth returns a fresh registration message.
func (p *Protocol) UploadAuth() *UploadAuth {
	m := p.uploadAuthSeed
	return &m
}

// ClientState returns a fresh client-state message.
func (p *Protocol) ClientState() *ClientState {
	m := p.clientStateSeed
	return &m
}

// MetadataRequest returns a fresh, empty metadata batch.
func (p *Protocol) MetadataRequest() *MetadataRequest {
	m := p.metadataSeed
	m.Tracks = nil
	return &m
}

// serviceURLs maps a message name to its endpoint path segment.
var serviceURLs = map[string]string{
	"upload_auth":  "upauth",
	"client_state": "clientstate",
	"metadata":     "metadata?version=1",
}

// ServiceURL returns the endpoint path segment for a message name.
func ServiceURL(name string) (string, bool) {
	path, ok := serviceURLs[name]
	return path, ok
}
