package mediator

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/0xsj/overwatch-pkg/log"
)

// ValidationHook runs before a request is dispatched. A non-nil error
// aborts the call and is returned to the caller unchanged.
type ValidationHook interface {
	Validate(ctx context.Context, req any) error
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger logs invoker construction and unresolved handlers.
func WithLogger(logger log.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithValidation runs hook before handler resolution.
func WithValidation(hook ValidationHook) Option {
	return func(d *Dispatcher) {
		d.hook = hook
	}
}

// Dispatcher routes requests to the handlers its resolver provides.
// It is safe for concurrent use. Invokers are cached per dispatcher.
type Dispatcher struct {
	resolver Resolver
	invokers invokerCache
	hook     ValidationHook
	logger   log.Logger
}

// New creates a Dispatcher backed by resolver.
func New(resolver Resolver, opts ...Option) *Dispatcher {
	if resolver == nil {
		resolver = ResolverFunc(func(context.Context, HandlerKey) (Binding, bool) {
			return nil, false
		})
	}

	d := &Dispatcher{resolver: resolver}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send dispatches req and returns the response of its handler.
// Handler errors, including context cancellation, are returned as is.
func Send[R any](ctx context.Context, d *Dispatcher, req Request[R]) (R, error) {
	var zero R

	if err := d.admit(ctx, req); err != nil {
		return zero, err
	}

	inv := d.invokerFor(req)
	typed, ok := inv.(*typedInvoker[R])
	if !ok {
		// Key and invoker are built from the same request type.
		panic(fmt.Sprintf("mediator: invoker for %s does not produce %v", inv.key(), reflect.TypeFor[R]()))
	}

	res, err := typed.invoke(ctx, d.resolver, req)
	if err != nil {
		d.observe(err)
		return zero, err
	}
	return res, nil
}

// SendCommand dispatches a command, discarding its Unit response.
func SendCommand(ctx context.Context, d *Dispatcher, cmd Command) error {
	_, err := Send[Unit](ctx, d, cmd)
	return err
}

// Dispatch is Send for callers that only know req at runtime. The
// response is returned boxed.
func (d *Dispatcher) Dispatch(ctx context.Context, req AnyRequest) (any, error) {
	if err := d.admit(ctx, req); err != nil {
		return nil, err
	}

	res, err := d.invokerFor(req).invokeAny(ctx, d.resolver, req)
	if err != nil {
		d.observe(err)
		return nil, err
	}
	return res, nil
}

// Cached returns the number of request types with a built invoker.
func (d *Dispatcher) Cached() int {
	return d.invokers.len()
}

func (d *Dispatcher) admit(ctx context.Context, req AnyRequest) error {
	if isNil(req) {
		return ErrInvalidArgument
	}
	if d.hook != nil {
		if err := d.hook.Validate(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) invokerFor(req AnyRequest) invoker {
	t := reflect.TypeOf(req)
	if inv, ok := d.invokers.load(t); ok {
		return inv
	}

	return d.invokers.getOrBuild(t, func() invoker {
		inv := req.newInvoker(t)
		if d.logger != nil {
			d.logger.Info("mediator invoker built",
				log.String("request", inv.key().Request.String()),
				log.String("response", inv.key().Response.String()),
			)
		}
		return inv
	})
}

func (d *Dispatcher) observe(err error) {
	if d.logger == nil {
		return
	}

	var notFound *HandlerNotFoundError
	if stderrors.As(err, &notFound) {
		d.logger.Warn("mediator handler not found",
			log.String("request", notFound.Key.Request.String()),
			log.String("response", notFound.Key.Response.String()),
		)
	}
}

func isNil(req AnyRequest) bool {
	if req == nil {
		return true
	}
	v := reflect.ValueOf(req)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
