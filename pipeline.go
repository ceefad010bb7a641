package apikit

import (
	"context"
	"net/http"

	"github.com/carlmjohnson/versioninfo"
)

// defaultUserAgent is set on drafts that carry no User-Agent of their own.
var defaultUserAgent = "apikit/" + versioninfo.Short()

// Do executes one HTTP exchange: it builds a request draft for method and
// url, runs the client's PreRequest hook, attaches the body, sends the draft
// over the client's transport, and runs PostResponse on the result.
//
// The returned response is whatever PostResponse returned; Do itself is
// decode-agnostic. Decoding is layered on top by Endpoint.Call or by the
// generated method (see Status, Text, Bytes, DecodeJSON).
//
// A PreRequest failure aborts the call before any network activity.
// Transport failures (connection, TLS, DNS, timeout, cancellation) are
// returned wrapped with KindTransport; the original error remains reachable
// through errors.Is and errors.As. Cancellation and timeout are entirely the
// transport's concern: Do adds no deadline of its own.
func Do(ctx context.Context, c Client, method, url string, body Body) (*http.Response, error) {
	info, _ := CallFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, newError(KindPreRequest, info, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	req, err = c.PreRequest(req)
	if err != nil {
		return nil, newError(KindPreRequest, info, err)
	}

	if err := body.attach(req); err != nil {
		return nil, newError(KindEncode, info, err)
	}

	res, err := c.HTTPClient().Do(req)
	if err != nil {
		return nil, newError(KindTransport, info, err)
	}

	return c.PostResponse(res), nil
}
