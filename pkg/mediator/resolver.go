package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// HandlerKey identifies the handler for a request type.
type HandlerKey struct {
	Request  reflect.Type
	Response reflect.Type
}

func (k HandlerKey) String() string {
	return fmt.Sprintf("%v -> %v", k.Request, k.Response)
}

// KeyFor returns the HandlerKey of TReq.
func KeyFor[TReq Request[R], R any]() HandlerKey {
	return HandlerKey{
		Request:  reflect.TypeFor[TReq](),
		Response: reflect.TypeFor[R](),
	}
}

// Resolver produces handler instances. It reports false when nothing is
// registered for key. Instance lifetime is the resolver's business; the
// dispatcher asks again on every call.
type Resolver interface {
	ResolveHandler(ctx context.Context, key HandlerKey) (Binding, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, key HandlerKey) (Binding, bool)

func (f ResolverFunc) ResolveHandler(ctx context.Context, key HandlerKey) (Binding, bool) {
	return f(ctx, key)
}

// Binding is a handler prepared for dispatch. Create one with Bind.
type Binding interface {
	Key() HandlerKey
	bound()
}

// Bind prepares h for dispatch.
func Bind[TReq Request[R], R any](h Handler[TReq, R]) Binding {
	return binding[TReq, R]{handler: h}
}

// boundHandler is what an invoker calls once the resolver has answered.
type boundHandler[R any] interface {
	handle(ctx context.Context, req Request[R]) (R, error)
}

type binding[TReq Request[R], R any] struct {
	handler Handler[TReq, R]
}

func (b binding[TReq, R]) Key() HandlerKey { return KeyFor[TReq, R]() }

func (binding[TReq, R]) bound() {}

func (b binding[TReq, R]) handle(ctx context.Context, req Request[R]) (R, error) {
	typed, ok := req.(TReq)
	if !ok {
		var zero R
		want := HandlerKey{Request: reflect.TypeOf(req), Response: reflect.TypeFor[R]()}
		return zero, &HandlerMismatchError{Want: want, Got: b.Key()}
	}
	return b.handler.Handle(ctx, typed)
}
