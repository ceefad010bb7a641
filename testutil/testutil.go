// Package testutil provides test doubles for the HTTP transport boundary.
// This package is designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// Responder produces a canned response for a recorded request.
type Responder func(req *http.Request) (*http.Response, error)

// Transport is an http.RoundTripper double. It records every outgoing
// request (including a drained copy of the body) and serves configured
// responses, so tests can assert exactly what the pipeline sent and whether
// a send happened at all. Safe for concurrent use.
type Transport struct {
	mu        sync.Mutex
	requests  []*http.Request
	bodies    [][]byte
	responder Responder
}

// NewTransport returns a Transport that answers 200 with an empty body until
// configured otherwise.
func NewTransport() *Transport {
	t := &Transport{}
	t.responder = func(req *http.Request) (*http.Response, error) {
		return Response(http.StatusOK, ""), nil
	}
	return t
}

// Respond configures a fixed status and body for every request.
func (t *Transport) Respond(status int, body string) *Transport {
	return t.RespondWith(func(*http.Request) (*http.Response, error) {
		return Response(status, body), nil
	})
}

// RespondJSON configures a fixed status and JSON-encoded body.
func (t *Transport) RespondJSON(status int, v any) *Transport {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: cannot marshal response: %v", err))
	}
	return t.RespondWith(func(*http.Request) (*http.Response, error) {
		res := Response(status, string(data))
		res.Header.Set("Content-Type", "application/json")
		return res, nil
	})
}

// Fail configures every request to fail with a transport-level error.
func (t *Transport) Fail(err error) *Transport {
	return t.RespondWith(func(*http.Request) (*http.Response, error) {
		return nil, err
	})
}

// RespondWith installs a custom responder.
func (t *Transport) RespondWith(r Responder) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responder = r
	return t
}

// Echo returns a responder that reflects the request body and content type
// back in a 200 response.
func Echo() Responder {
	return func(req *http.Request) (*http.Response, error) {
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
		}
		res := Response(http.StatusOK, string(body))
		if ct := req.Header.Get("Content-Type"); ct != "" {
			res.Header.Set("Content-Type", ct)
		}
		return res, nil
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
		// Restore so responders can read it too.
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	t.mu.Lock()
	t.requests = append(t.requests, req)
	t.bodies = append(t.bodies, body)
	responder := t.responder
	t.mu.Unlock()

	res, err := responder(req)
	if res != nil && res.Request == nil {
		res.Request = req
	}
	return res, err
}

// Client returns an *http.Client sending through the double.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Sent reports whether any request reached the transport.
func (t *Transport) Sent() bool {
	return t.Count() > 0
}

// Count returns the number of recorded requests.
func (t *Transport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Request returns the i-th recorded request.
func (t *Transport) Request(i int) *http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests[i]
}

// Body returns the drained body of the i-th recorded request.
func (t *Transport) Body(i int) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bodies[i]
}

// LastRequest returns the most recent recorded request, or nil.
func (t *Transport) LastRequest() *http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil
	}
	return t.requests[len(t.requests)-1]
}

// Response builds a *http.Response suitable for returning from a Responder.
func Response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

// AssertHeader checks that a recorded request carries the expected header.
func AssertHeader(t *testing.T, req *http.Request, key, want string) {
	t.Helper()
	if got := req.Header.Get(key); got != want {
		t.Errorf("expected header %s=%q, got %q", key, want, got)
	}
}

// AssertJSONBody checks that body is exactly the JSON encoding of want,
// ignoring formatting differences.
func AssertJSONBody(t *testing.T, body []byte, want any) {
	t.Helper()
	wantJSON, _ := json.Marshal(want)

	var wantData, gotData any
	if err := json.Unmarshal(wantJSON, &wantData); err != nil {
		t.Fatalf("cannot marshal expected value: %v", err)
	}
	if err := json.Unmarshal(body, &gotData); err != nil {
		t.Fatalf("request body is not valid JSON: %v\nBody: %s", err, body)
	}

	wantStr, _ := json.MarshalIndent(wantData, "", "  ")
	gotStr, _ := json.MarshalIndent(gotData, "", "  ")
	if string(wantStr) != string(gotStr) {
		t.Errorf("body mismatch:\nExpected:\n%s\nActual:\n%s", wantStr, gotStr)
	}
}
