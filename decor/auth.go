package decor

import "net/http"

// BearerAuth returns a pre-request hook that sets a bearer token on the
// Authorization header of every draft.
func BearerAuth(token string) PreRequest {
	return func(req *http.Request) (*http.Request, error) {
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	}
}

// BasicAuth returns a pre-request hook that sets HTTP basic auth credentials
// on every draft.
func BasicAuth(username, password string) PreRequest {
	return func(req *http.Request) (*http.Request, error) {
		req.SetBasicAuth(username, password)
		return req, nil
	}
}

// Header returns a pre-request hook that sets a single header.
func Header(key, value string) PreRequest {
	return func(req *http.Request) (*http.Request, error) {
		req.Header.Set(key, value)
		return req, nil
	}
}

// Headers returns a pre-request hook that sets each of the given headers.
func Headers(h map[string]string) PreRequest {
	return func(req *http.Request) (*http.Request, error) {
		for k, v := range h {
			req.Header.Set(k, v)
		}
		return req, nil
	}
}
