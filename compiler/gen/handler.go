package gen

import (
	"context"
	"fmt"
)

// Handler is one step of the handler chain. Handlers of a chain run in
// registration order; the first error stops the chain for that type.
type Handler[C Context] interface {
	Handle(ctx context.Context, c C) error
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as handlers.
type HandlerFunc[C Context] func(ctx context.Context, c C) error

// Handle calls f(ctx, c).
func (f HandlerFunc[C]) Handle(ctx context.Context, c C) error {
	return f(ctx, c)
}

// Named labels a handler in errors and logs.
func Named[C Context](name string, h Handler[C]) Handler[C] {
	return named[C]{name: name, Handler: h}
}

type named[C Context] struct {
	Handler[C]
	name string
}

func (n named[C]) Name() string { return n.name }

// HandlerName returns the label of a handler: its Name method if it has
// one, its dynamic type otherwise.
func HandlerName[C Context](h Handler[C]) string {
	if n, ok := h.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", h)
}

// handle runs h and turns a panic into an error.
func handle[C Context](ctx context.Context, h Handler[C], c C) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.Handle(ctx, c)
}
