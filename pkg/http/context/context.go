package context

import (
	"context"
)

type requestIdContextType struct{}

var RequestIdContextKey = &requestIdContextType{}

// WithRequestId stores the identifier of the mock request a context belongs to.
func WithRequestId(parent context.Context, requestId string) context.Context {
	return context.WithValue(parent, RequestIdContextKey, requestId)
}

func RequestIdFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestId, ok := ctx.Value(RequestIdContextKey).(string)
	return requestId, ok && requestId != ""
}
