package mediator

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// invoker resolves and calls the handler of one request type.
// It holds no per-call state.
type invoker interface {
	key() HandlerKey
	invokeAny(ctx context.Context, resolver Resolver, req AnyRequest) (any, error)
}

type typedInvoker[R any] struct {
	k HandlerKey
}

func newTypedInvoker[R any](reqType reflect.Type) invoker {
	return &typedInvoker[R]{
		k: HandlerKey{Request: reqType, Response: reflect.TypeFor[R]()},
	}
}

func (i *typedInvoker[R]) key() HandlerKey { return i.k }

func (i *typedInvoker[R]) invoke(ctx context.Context, resolver Resolver, req Request[R]) (R, error) {
	var zero R

	b, ok := resolver.ResolveHandler(ctx, i.k)
	if !ok || b == nil {
		return zero, &HandlerNotFoundError{Key: i.k}
	}

	h, ok := b.(boundHandler[R])
	if !ok {
		return zero, &HandlerMismatchError{Want: i.k, Got: b.Key()}
	}

	return h.handle(ctx, req)
}

func (i *typedInvoker[R]) invokeAny(ctx context.Context, resolver Resolver, req AnyRequest) (any, error) {
	typed, ok := req.(Request[R])
	if !ok {
		return nil, &HandlerMismatchError{
			Want: HandlerKey{Request: reflect.TypeOf(req)},
			Got:  i.k,
		}
	}

	res, err := i.invoke(ctx, resolver, typed)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// invokerCache maps request types to their invokers. Reads take no lock;
// the first use of a type builds its invoker exactly once while other
// types proceed independently.
type invokerCache struct {
	ready   sync.Map // reflect.Type -> invoker
	pending sync.Map // reflect.Type -> *cacheEntry
	size    atomic.Int64
}

type cacheEntry struct {
	once sync.Once
	inv  invoker
}

func (c *invokerCache) load(t reflect.Type) (invoker, bool) {
	v, ok := c.ready.Load(t)
	if !ok {
		return nil, false
	}
	return v.(invoker), true
}

func (c *invokerCache) getOrBuild(t reflect.Type, build func() invoker) invoker {
	if inv, ok := c.load(t); ok {
		return inv
	}

	v, _ := c.pending.LoadOrStore(t, &cacheEntry{})
	e := v.(*cacheEntry)
	e.once.Do(func() {
		e.inv = build()
		c.ready.Store(t, e.inv)
		c.size.Add(1)
	})
	return e.inv
}

func (c *invokerCache) len() int {
	return int(c.size.Load())
}
