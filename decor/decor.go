// Package decor provides ready-made hook implementations that compose over
// any apikit.Client: authentication headers, logging, and transport
// construction. Decorators keep cross-cutting behavior out of per-endpoint
// code, which never changes.
package decor

import (
	"net/http"

	"github.com/broady/apikit"
)

// PreRequest is one link in a pre-request hook chain.
type PreRequest func(*http.Request) (*http.Request, error)

// PostResponse is one link in a post-response hook chain.
type PostResponse func(*http.Response) *http.Response

// Client wraps an inner apikit.Client with additional hooks. The inner
// client's own hooks run first; wrapped hooks run in the order added.
type Client struct {
	inner apikit.Client
	pre   []PreRequest
	post  []PostResponse
}

// Wrap returns a Client decorating inner.
func Wrap(inner apikit.Client) *Client {
	return &Client{inner: inner}
}

// WithPreRequest appends pre-request hooks. It returns the client for
// chaining at construction time.
func (c *Client) WithPreRequest(fns ...PreRequest) *Client {
	c.pre = append(c.pre, fns...)
	return c
}

// WithPostResponse appends post-response hooks.
func (c *Client) WithPostResponse(fns ...PostResponse) *Client {
	c.post = append(c.post, fns...)
	return c
}

// HTTPClient returns the inner client's transport.
func (c *Client) HTTPClient() *http.Client {
	return c.inner.HTTPClient()
}

// PreRequest runs the inner hook, then each wrapped hook in order. The first
// failure aborts the chain.
func (c *Client) PreRequest(req *http.Request) (*http.Request, error) {
	req, err := c.inner.PreRequest(req)
	if err != nil {
		return nil, err
	}
	for _, fn := range c.pre {
		req, err = fn(req)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

// PostResponse runs the inner hook, then each wrapped hook in order.
func (c *Client) PostResponse(res *http.Response) *http.Response {
	res = c.inner.PostResponse(res)
	for _, fn := range c.post {
		res = fn(res)
	}
	return res
}
