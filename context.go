package apikit

import (
	"context"
)

type contextKey struct {
	name string
}

var callInfoKey = &contextKey{"call_info"}

// CallInfo identifies the declared operation executing on a context.
// It is placed on the request context by Endpoint.Call and by generated
// client methods, so hooks and decorators can observe which operation a
// draft or response belongs to.
type CallInfo struct {
	Service string
	Method  string
}

// ID returns the "Service.Method" identifier for the call.
func (i *CallInfo) ID() string {
	if i.Service == "" {
		return i.Method
	}
	return i.Service + "." + i.Method
}

// NewContext returns a context carrying the call info.
func NewContext(ctx context.Context, info *CallInfo) context.Context {
	return context.WithValue(ctx, callInfoKey, info)
}

// CallFromContext returns the call info attached to the context, if any.
func CallFromContext(ctx context.Context) (*CallInfo, bool) {
	info, ok := ctx.Value(callInfoKey).(*CallInfo)
	return info, ok
}
