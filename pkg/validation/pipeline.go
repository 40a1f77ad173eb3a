package validation

import (
	"context"
	"reflect"
	"sync"

	"github.com/0xsj/overwatch-pkg/log"
)

// Options controls how a Pipeline reacts to failures.
type Options struct {
	// FailOnError rejects invalid requests. When false, failures are
	// logged and the request proceeds.
	FailOnError bool

	// RunAll runs every validator of a request. Only report-only
	// pipelines stop at the first failing validator when it is false;
	// rejecting pipelines always collect every failure.
	RunAll bool
}

// DefaultOptions rejects invalid requests with every failure collected.
func DefaultOptions() Options {
	return Options{
		FailOnError: true,
		RunAll:      false,
	}
}

type erasedValidator func(ctx context.Context, req any) (Result, error)

// Pipeline runs the validators registered for a request's type. It
// implements mediator.ValidationHook.
type Pipeline struct {
	mu         sync.RWMutex
	validators map[reflect.Type][]erasedValidator
	opts       Options
	logger     log.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger logs failures that are let through.
func WithLogger(logger log.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a Pipeline with no validators.
func NewPipeline(opts Options, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		validators: make(map[reflect.Type][]erasedValidator),
		opts:       opts,
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Register adds v to the validators of T. Validators run in
// registration order.
func Register[T any](p *Pipeline, v Validator[T]) {
	t := reflect.TypeFor[T]()
	fn := func(ctx context.Context, req any) (Result, error) {
		typed, ok := req.(T)
		if !ok {
			return Success(), nil
		}
		return v.Validate(ctx, typed)
	}

	p.mu.Lock()
	p.validators[t] = append(p.validators[t], fn)
	p.mu.Unlock()
}

// Validate runs the validators of req's type. Requests without
// validators pass.
func (p *Pipeline) Validate(ctx context.Context, req any) error {
	p.mu.RLock()
	validators := p.validators[reflect.TypeOf(req)]
	p.mu.RUnlock()

	if len(validators) == 0 {
		return nil
	}

	var errs []FieldError
	for _, v := range validators {
		res, err := v(ctx, req)
		if err != nil {
			return err
		}
		if !res.Valid() {
			errs = append(errs, res.Errors...)
			if !p.opts.RunAll && !p.opts.FailOnError {
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	result := Result{Errors: errs}
	if p.opts.FailOnError {
		return &FailedError{Result: result}
	}

	if p.logger != nil {
		p.logger.Warn("request failed validation",
			log.String("request", reflect.TypeOf(req).String()),
			log.String("errors", result.String()),
		)
	}
	return nil
}
