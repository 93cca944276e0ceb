// Package ctxkey carries request scoped values through a context.
package ctxkey

import (
	"context"

	"github.com/retro-framework/go-fingerprint/framework"
)

type contextKey string

func (c contextKey) String() string {
	return "fingerprint " + string(c)
}

var (
	contextKeyLogger = contextKey("logger")
	contextKeyRef    = contextKey("ref")
)

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l framework.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, l)
}

// Logger gets the logger from the context. If none is present a
// framework.Noop is returned.
func Logger(ctx context.Context) framework.Logger {
	l, ok := ctx.Value(contextKeyLogger).(framework.Logger)
	if !ok || l == nil {
		return framework.Noop{}
	}
	return l
}

// WithRef returns a copy of ctx carrying the ref name being served.
func WithRef(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKeyRef, name)
}

// Ref gets the ref name from the context, the empty string when none
// is present.
func Ref(ctx context.Context) string {
	ref, _ := ctx.Value(contextKeyRef).(string)
	return ref
}
