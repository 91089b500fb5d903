package access

import (
	"context"
	"errors"
)

type callerKey struct{}

// ErrNoCaller is returned when a request reached a service without a resolved caller.
var ErrNoCaller = errors.New("caller is not resolved")

// WithCaller stores the resolved caller on the request context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the caller stored by WithCaller.
func CallerFromContext(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok {
		return Caller{}, ErrNoCaller
	}
	return c, nil
}
