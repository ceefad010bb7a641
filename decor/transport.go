package decor

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// RetryTransport returns an *http.Client that retries transient failures
// with exponential backoff. Retry policy lives entirely in the injected
// transport; the request pipeline itself never retries.
//
// Pass the result to apikit.NewBaseWith or a generated NewXxxClientWith.
func RetryTransport(retryMax int) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	rc.Logger = nil
	return rc.StandardClient()
}

// TimeoutTransport returns a pooled *http.Client with an overall per-call
// timeout. Cancellation surfaces as a transport-kind error.
func TimeoutTransport(timeout time.Duration) *http.Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	return hc
}
