package mediator

import (
	"context"
	"reflect"
)

// Request is implemented by every request whose handler produces R.
// A type becomes a Request by embedding Returns[R]; embedding two
// different markers leaves the type satisfying no Request at all.
type Request[R any] interface {
	AnyRequest
	respondsWith(R)
}

// AnyRequest is a request viewed without its response type.
type AnyRequest interface {
	newInvoker(reqType reflect.Type) invoker
}

// Returns declares the response type of the request that embeds it.
//
//	type GetItem struct {
//		mediator.Returns[GetItemResult]
//		ID types.ID
//	}
type Returns[R any] struct{}

func (Returns[R]) respondsWith(R) {}

func (Returns[R]) newInvoker(reqType reflect.Type) invoker {
	return newTypedInvoker[R](reqType)
}

// Command is a request that produces no value.
type Command = Request[Unit]

// Void is embedded by commands.
type Void = Returns[Unit]

// Handler handles one request type.
type Handler[TReq Request[R], R any] interface {
	Handle(ctx context.Context, req TReq) (R, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[TReq Request[R], R any] func(ctx context.Context, req TReq) (R, error)

func (f HandlerFunc[TReq, R]) Handle(ctx context.Context, req TReq) (R, error) {
	return f(ctx, req)
}
