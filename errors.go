package apikit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies where in a call a failure occurred.
type ErrorKind string

const (
	// KindPreRequest is a failure raised before any network activity:
	// a PreRequest hook error, a bad verb or URL, or a missing URL parameter.
	KindPreRequest ErrorKind = "pre_request"
	// KindEncode is a failure serializing the request payload.
	KindEncode ErrorKind = "encode"
	// KindTransport is a connection, TLS, DNS, timeout, or cancellation
	// failure raised by the transport. The underlying error is preserved
	// unchanged through Unwrap.
	KindTransport ErrorKind = "transport"
	// KindBodyRead is a failure draining the response body.
	KindBodyRead ErrorKind = "body_read"
	// KindDecode is a failure deserializing the response body into the
	// declared result type. The bytes were read but did not parse.
	KindDecode ErrorKind = "decode"
)

// Error is the failure value returned by every call. It carries the kind,
// the declared operation (when known), and the HTTP status (when a response
// was received before the failure).
type Error struct {
	Kind    ErrorKind
	Service string
	Method  string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Service != "" {
		fmt.Fprintf(&b, " %s.%s", e.Service, e.Method)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an apikit call failure, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// newError wraps err with a kind and the call metadata found in info.
// info may be nil.
func newError(kind ErrorKind, info *CallInfo, err error) *Error {
	e := &Error{Kind: kind, Err: err}
	if info != nil {
		e.Service = info.Service
		e.Method = info.Method
	}
	return e
}
