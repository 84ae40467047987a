package context

import (
	"context"
)

type errorContextType struct{}

var ErrorContextKey errorContextType

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, ErrorContextKey, err)
}

func ErrorFrom(ctx context.Context) (error, bool) {
	if ctx == nil {
		return nil, false
	}
	err, ok := ctx.Value(ErrorContextKey).(error)
	return err, ok && err != nil
}
