package decor

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/broady/apikit"
)

type startTimeKey struct{}

// Logging returns a pre-request and post-response hook pair that log each
// call using slog: the operation id when the draft is about to be sent, and
// the status plus duration when the response arrives. Transport failures
// never reach the post-response hook; the caller sees those as errors.
func Logging(logger *slog.Logger) (PreRequest, PostResponse) {
	if logger == nil {
		logger = slog.Default()
	}

	pre := func(req *http.Request) (*http.Request, error) {
		ctx := context.WithValue(req.Context(), startTimeKey{}, time.Now())
		req = req.WithContext(ctx)

		attrs := []any{
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
		}
		if info, ok := apikit.CallFromContext(ctx); ok {
			attrs = append(attrs, slog.String("endpoint", info.ID()))
		}
		logger.InfoContext(ctx, "call started", attrs...)
		return req, nil
	}

	post := func(res *http.Response) *http.Response {
		// An earlier hook may have substituted a synthetic response that
		// carries no request.
		ctx := context.Background()
		if res.Request != nil {
			ctx = res.Request.Context()
		}
		attrs := []any{
			slog.Int("status", res.StatusCode),
		}
		if start, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
			attrs = append(attrs, slog.Duration("duration", time.Since(start)))
		}
		if info, ok := apikit.CallFromContext(ctx); ok {
			attrs = append(attrs, slog.String("endpoint", info.ID()))
		}
		logger.InfoContext(ctx, "call completed", attrs...)
		return res
	}

	return pre, post
}
