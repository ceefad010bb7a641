package apikit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResultKind identifies how a pipelined response is turned into a typed
// value. The set is closed.
type ResultKind int

const (
	// ResultStatus yields the numeric HTTP status. It always succeeds when
	// a response was received; a non-2xx status is not an error by itself.
	ResultStatus ResultKind = iota
	// ResultText yields the response body as a string.
	ResultText
	// ResultBytes yields the response body as raw bytes.
	ResultBytes
	// ResultJSON deserializes the response body into the declared type.
	ResultJSON
)

// String returns the manifest spelling of the kind.
func (k ResultKind) String() string {
	switch k {
	case ResultStatus:
		return "status"
	case ResultText:
		return "text"
	case ResultBytes:
		return "bytes"
	case ResultJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Status consumes the response and returns its status code. The body is
// drained and closed so the transport can reuse the connection.
func Status(res *http.Response) (int, error) {
	defer res.Body.Close()
	// Best effort: a failed drain does not invalidate the status line.
	io.Copy(io.Discard, res.Body) //nolint:errcheck
	return res.StatusCode, nil
}

// Bytes consumes the response body fully and returns it.
func Bytes(res *http.Response) ([]byte, error) {
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindBodyRead, Status: res.StatusCode, Err: err}
	}
	return data, nil
}

// Text consumes the response body fully and returns it as a string.
func Text(res *http.Response) (string, error) {
	data, err := Bytes(res)
	return string(data), err
}

// DecodeJSON consumes the response body and deserializes it as T. A body
// that cannot be drained is a body-read error; bytes that do not parse as T
// are a decode error carrying the HTTP status for diagnosis. A decode
// failure is terminal for the call: the result is never defaulted.
func DecodeJSON[T any](res *http.Response) (T, error) {
	var out T
	data, err := Bytes(res)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &Error{
			Kind:   KindDecode,
			Status: res.StatusCode,
			Err:    fmt.Errorf("decoding response as %T: %w", out, err),
		}
	}
	return out, nil
}
