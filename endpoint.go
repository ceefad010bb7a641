package apikit

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-querystring/query"
)

// Empty is the request type for endpoints that carry no payload.
type Empty struct{}

// Endpoint is the immutable descriptor of one API call: an HTTP verb, a URL
// template with named placeholders, a body kind, and a result kind. It is
// constructed once when the client type is defined and shared by every
// invocation; Call borrows a Client for the duration of one exchange.
//
// Req is the payload type (Empty when the body kind is BodyNone,
// MultipartForm when it is BodyMultipart). Res must match the result kind:
// int for ResultStatus, string for ResultText, []byte for ResultBytes, and
// any JSON-decodable type for ResultJSON.
type Endpoint[Req, Res any] struct {
	verb       string
	tmpl       *Template
	bodyKind   BodyKind
	resultKind ResultKind
	service    string
	method     string
	queryParam string
}

// NewEndpoint builds an endpoint descriptor, rejecting inconsistent
// declarations at definition time: a malformed template, a payload type that
// does not match the body kind, or a result type that does not match the
// result kind.
func NewEndpoint[Req, Res any](verb, urlTemplate string, body BodyKind, result ResultKind) (*Endpoint[Req, Res], error) {
	if verb == "" {
		return nil, fmt.Errorf("endpoint verb must not be empty")
	}
	tmpl, err := ParseTemplate(urlTemplate)
	if err != nil {
		return nil, err
	}

	var req Req
	reqType := reflect.TypeOf(&req).Elem()
	isEmpty := reqType == reflect.TypeOf(Empty{})
	isMultipart := reqType == reflect.TypeOf(MultipartForm{})
	switch body {
	case BodyNone:
		if !isEmpty {
			return nil, fmt.Errorf("endpoint %s %s: request type %s declared without a body kind", verb, urlTemplate, reqType)
		}
	case BodyJSON, BodyForm:
		if isEmpty {
			return nil, fmt.Errorf("endpoint %s %s: body kind %s requires a request type", verb, urlTemplate, body)
		}
	case BodyMultipart:
		if !isMultipart {
			return nil, fmt.Errorf("endpoint %s %s: multipart body requires request type apikit.MultipartForm, got %s", verb, urlTemplate, reqType)
		}
	default:
		return nil, fmt.Errorf("endpoint %s %s: unknown body kind %d", verb, urlTemplate, body)
	}

	var res Res
	resType := reflect.TypeOf(&res).Elem()
	switch result {
	case ResultStatus:
		if resType != reflect.TypeOf(int(0)) {
			return nil, fmt.Errorf("endpoint %s %s: result kind status requires int, got %s", verb, urlTemplate, resType)
		}
	case ResultText:
		if resType != reflect.TypeOf("") {
			return nil, fmt.Errorf("endpoint %s %s: result kind text requires string, got %s", verb, urlTemplate, resType)
		}
	case ResultBytes:
		if resType != reflect.TypeOf([]byte(nil)) {
			return nil, fmt.Errorf("endpoint %s %s: result kind bytes requires []byte, got %s", verb, urlTemplate, resType)
		}
	case ResultJSON:
		// Any type json can decode into.
	default:
		return nil, fmt.Errorf("endpoint %s %s: unknown result kind %d", verb, urlTemplate, result)
	}

	return &Endpoint[Req, Res]{
		verb:       verb,
		tmpl:       tmpl,
		bodyKind:   body,
		resultKind: result,
	}, nil
}

// MustEndpoint is NewEndpoint that panics on an invalid declaration.
// Intended for package-level endpoint definitions and generated code.
func MustEndpoint[Req, Res any](verb, urlTemplate string, body BodyKind, result ResultKind) *Endpoint[Req, Res] {
	e, err := NewEndpoint[Req, Res](verb, urlTemplate, body, result)
	if err != nil {
		panic("apikit: " + err.Error())
	}
	return e
}

// Named sets the service and method identifier reported in call info and
// errors. It returns the endpoint for chaining at definition time.
func (e *Endpoint[Req, Res]) Named(service, method string) *Endpoint[Req, Res] {
	e.service = service
	e.method = method
	return e
}

// QueryParam declares that the named call parameter holds a struct to be
// encoded as the URL query string (via `url` struct tags). The parameter is
// not a template placeholder.
func (e *Endpoint[Req, Res]) QueryParam(name string) *Endpoint[Req, Res] {
	e.queryParam = name
	return e
}

// EndpointInfo describes a built endpoint for introspection and tooling.
type EndpointInfo struct {
	Service     string
	Method      string
	Verb        string
	URLTemplate string
	Body        BodyKind
	Result      ResultKind
	Request     reflect.Type
	Response    reflect.Type
}

// Metadata returns the endpoint's descriptor fields.
func (e *Endpoint[Req, Res]) Metadata() *EndpointInfo {
	var req Req
	var res Res
	return &EndpointInfo{
		Service:     e.service,
		Method:      e.method,
		Verb:        e.verb,
		URLTemplate: e.tmpl.String(),
		Body:        e.bodyKind,
		Result:      e.resultKind,
		Request:     reflect.TypeOf(&req).Elem(),
		Response:    reflect.TypeOf(&res).Elem(),
	}
}

// Call executes the endpoint against c: it substitutes params into the URL
// template, constructs the declared body variant from req, runs the request
// pipeline, and applies the declared result decoding. All failures come back
// as a *Error distinguishing the pre-request, encode, transport, body-read,
// and decode stages.
func (e *Endpoint[Req, Res]) Call(ctx context.Context, c Client, req Req, params Params) (Res, error) {
	var zero Res
	info := &CallInfo{Service: e.service, Method: e.method}
	ctx = NewContext(ctx, info)

	u, err := e.tmpl.Expand(params)
	if err != nil {
		return zero, newError(KindPreRequest, info, err)
	}
	if e.queryParam != "" {
		if qv, ok := params[e.queryParam]; ok && qv != nil {
			vals, err := query.Values(qv)
			if err != nil {
				return zero, newError(KindEncode, info, err)
			}
			if enc := vals.Encode(); enc != "" {
				sep := "?"
				if strings.ContainsRune(u, '?') {
					sep = "&"
				}
				u += sep + enc
			}
		}
	}

	var body Body
	switch e.bodyKind {
	case BodyJSON:
		body = JSON(req)
	case BodyForm:
		body = Form(req)
	case BodyMultipart:
		// Req is MultipartForm; guaranteed by NewEndpoint.
		mf := any(req).(MultipartForm)
		body = Multipart(mf.ContentType, mf.Content)
	default:
		body = None()
	}

	res, err := Do(ctx, c, e.verb, u, body)
	if err != nil {
		return zero, err
	}

	switch e.resultKind {
	case ResultStatus:
		code, err := Status(res)
		if err != nil {
			return zero, annotate(err, info)
		}
		return any(code).(Res), nil
	case ResultText:
		s, err := Text(res)
		if err != nil {
			return zero, annotate(err, info)
		}
		return any(s).(Res), nil
	case ResultBytes:
		b, err := Bytes(res)
		if err != nil {
			return zero, annotate(err, info)
		}
		return any(b).(Res), nil
	default: // ResultJSON
		out, err := DecodeJSON[Res](res)
		if err != nil {
			return zero, annotate(err, info)
		}
		return out, nil
	}
}

// annotate fills in the call identity on errors produced by the decode
// helpers, which see only the response.
func annotate(err error, info *CallInfo) error {
	if e, ok := err.(*Error); ok && e.Service == "" && e.Method == "" {
		e.Service = info.Service
		e.Method = info.Method
	}
	return err
}
