package apikit

import (
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// Client is the contract every concrete API client implements. It exposes
// the owned transport and the two extension hooks the pipeline invokes
// around each exchange.
//
// Concrete clients are produced by the generator (apikitgen) or written by
// hand; either way the pipeline in Do never changes. Cross-cutting behavior
// such as authentication headers or session capture belongs in the hooks,
// not in per-endpoint code.
type Client interface {
	// HTTPClient returns the owned transport. It must be stable across
	// calls on the same instance.
	HTTPClient() *http.Client

	// PreRequest receives the not-yet-sent request draft and returns a
	// possibly modified draft. Returning an error aborts the call before
	// any bytes are sent.
	PreRequest(req *http.Request) (*http.Request, error)

	// PostResponse receives the response from the transport and returns
	// the effective response that decoding will consume. Implementations
	// may mutate client-held state here (for example, capturing a session
	// token); a client that does so must not be shared across overlapping
	// in-flight calls unless it synchronizes that state itself.
	PostResponse(res *http.Response) *http.Response
}

// Base is the batteries-included Client: identity hooks and a pooled default
// transport. Embed it in a hand-written client to override only the hooks
// you need, or use it directly for APIs that need no cross-cutting behavior.
type Base struct {
	client *http.Client
}

// NewBase returns a Base backed by a fresh pooled transport.
func NewBase() *Base {
	return &Base{client: cleanhttp.DefaultPooledClient()}
}

// NewBaseWith returns a Base backed by the given transport. Use this to
// supply timeouts, proxies, or a retrying client such as
// decor.RetryTransport.
func NewBaseWith(hc *http.Client) *Base {
	if hc == nil {
		hc = cleanhttp.DefaultPooledClient()
	}
	return &Base{client: hc}
}

// HTTPClient returns the owned transport.
func (b *Base) HTTPClient() *http.Client {
	return b.client
}

// PreRequest is the identity hook.
func (b *Base) PreRequest(req *http.Request) (*http.Request, error) {
	return req, nil
}

// PostResponse is the identity hook.
func (b *Base) PostResponse(res *http.Response) *http.Response {
	return res
}
