// Package registry is an in-memory handler resolution service for the
// mediator. Handlers are registered either as shared instances or as
// factories that build a fresh instance for every dispatch.
package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/0xsj/overwatch-pkg/errors"

	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// Registry error codes
const (
	CodeDuplicateHandler errors.Code = "REGISTRY_DUPLICATE_HANDLER"
	CodeNilHandler       errors.Code = "REGISTRY_NIL_HANDLER"
)

var (
	ErrDuplicateHandler = errors.New(errors.KindConflict, CodeDuplicateHandler, "handler already registered")

	ErrNilHandler = errors.New(errors.KindValidation, CodeNilHandler, "handler must not be nil")
)

type provider func() mediator.Binding

// Registry implements mediator.Resolver.
type Registry struct {
	mu        sync.RWMutex
	providers map[mediator.HandlerKey]provider
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		providers: make(map[mediator.HandlerKey]provider),
	}
}

// Register registers h as the shared handler for TReq.
func Register[TReq mediator.Request[R], R any](r *Registry, h mediator.Handler[TReq, R]) error {
	if isNil(h) {
		return ErrNilHandler
	}

	b := mediator.Bind(h)
	return r.add(b.Key(), func() mediator.Binding { return b })
}

// RegisterFactory registers a factory that builds a new handler for
// every dispatch of TReq.
func RegisterFactory[TReq mediator.Request[R], R any](r *Registry, factory func() mediator.Handler[TReq, R]) error {
	if factory == nil {
		return ErrNilHandler
	}

	return r.add(mediator.KeyFor[TReq, R](), func() mediator.Binding {
		h := factory()
		if isNil(h) {
			return nil
		}
		return mediator.Bind(h)
	})
}

// MustRegister is Register that panics on error.
func MustRegister[TReq mediator.Request[R], R any](r *Registry, h mediator.Handler[TReq, R]) {
	if err := Register(r, h); err != nil {
		panic(err)
	}
}

// ResolveHandler implements mediator.Resolver.
func (r *Registry) ResolveHandler(_ context.Context, key mediator.HandlerKey) (mediator.Binding, bool) {
	r.mu.RLock()
	p, ok := r.providers[key]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}

	b := p()
	if b == nil {
		return nil, false
	}
	return b, true
}

// Keys returns the registered handler keys ordered by name.
func (r *Registry) Keys() []mediator.HandlerKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]mediator.HandlerKey, 0, len(r.providers))
	for k := range r.providers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}

// isNil reports whether h is nil or an interface wrapping a nil value.
func isNil(h any) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (r *Registry) add(key mediator.HandlerKey, p provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, key)
	}
	r.providers[key] = p
	return nil
}
