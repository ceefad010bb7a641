package apikit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

// formEncoder encodes form payload structs into url.Values.
// Field names follow the struct's `schema` tags.
var formEncoder = schema.NewEncoder()

// BodyKind identifies how a request payload is attached to an outgoing
// request. The set is closed: a call uses exactly one kind, chosen at the
// call site, never inferred from the payload's shape.
type BodyKind int

const (
	// BodyNone sends no payload.
	BodyNone BodyKind = iota
	// BodyJSON serializes the payload as JSON with content-type application/json.
	BodyJSON
	// BodyForm serializes the payload as URL-encoded form data.
	BodyForm
	// BodyMultipart attaches a pre-built multipart stream wholesale.
	BodyMultipart
)

// String returns the manifest spelling of the kind.
func (k BodyKind) String() string {
	switch k {
	case BodyNone:
		return "none"
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	case BodyMultipart:
		return "multipart"
	default:
		return "unknown"
	}
}

// Body is one request payload, tagged with its kind.
// Construct with None, JSON, Form, or Multipart.
type Body struct {
	kind        BodyKind
	payload     any
	contentType string
	reader      io.Reader
}

// None returns an empty body.
func None() Body {
	return Body{kind: BodyNone}
}

// JSON returns a body that serializes v as JSON.
func JSON(v any) Body {
	return Body{kind: BodyJSON, payload: v}
}

// Form returns a body that serializes v as URL-encoded form data.
// v must be a struct or a pointer to one; fields are named by `schema` tags.
func Form(v any) Body {
	return Body{kind: BodyForm, payload: v}
}

// Multipart returns a body that attaches a pre-built multipart stream.
// contentType must include the boundary, as produced by
// multipart.Writer.FormDataContentType.
func Multipart(contentType string, r io.Reader) Body {
	return Body{kind: BodyMultipart, contentType: contentType, reader: r}
}

// Kind returns the variant tag.
func (b Body) Kind() BodyKind {
	return b.kind
}

// attach serializes the payload onto the request draft. The draft's existing
// headers are preserved; only Content-Type and the body itself are set.
func (b Body) attach(req *http.Request) error {
	switch b.kind {
	case BodyNone:
		return nil

	case BodyJSON:
		data, err := json.Marshal(b.payload)
		if err != nil {
			return err
		}
		setByteBody(req, data)
		req.Header.Set("Content-Type", "application/json")
		return nil

	case BodyForm:
		vals := url.Values{}
		if err := formEncoder.Encode(b.payload, vals); err != nil {
			return err
		}
		setByteBody(req, []byte(vals.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return nil

	case BodyMultipart:
		if b.reader == nil {
			req.Body = http.NoBody
			req.ContentLength = 0
		} else if rc, ok := b.reader.(io.ReadCloser); ok {
			req.Body = rc
			req.ContentLength = -1
		} else {
			req.Body = io.NopCloser(b.reader)
			req.ContentLength = -1
		}
		req.Header.Set("Content-Type", b.contentType)
		return nil
	}
	return nil
}

// setByteBody installs a fully-buffered body on the draft, including GetBody
// so the transport can replay it across redirects.
func setByteBody(req *http.Request, data []byte) {
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.ContentLength = int64(len(data))
}

// MultipartForm is the request payload type for endpoints declared with
// BodyMultipart. ContentType must include the boundary.
type MultipartForm struct {
	ContentType string
	Content     io.Reader
}

// NewMultipartForm buffers the given multipart bytes into a payload.
// Most callers build the content with mime/multipart.Writer.
func NewMultipartForm(contentType string, content []byte) MultipartForm {
	return MultipartForm{ContentType: contentType, Content: bytes.NewReader(content)}
}
