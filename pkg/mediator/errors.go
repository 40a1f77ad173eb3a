package mediator

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/0xsj/overwatch-pkg/errors"
)

// Dispatch error codes
const (
	CodeInvalidArgument errors.Code = "MEDIATOR_INVALID_ARGUMENT"
	CodeHandlerNotFound errors.Code = "MEDIATOR_HANDLER_NOT_FOUND"
	CodeHandlerMismatch errors.Code = "MEDIATOR_HANDLER_MISMATCH"
)

var (
	// ErrInvalidArgument is returned for a nil request, before any handler is resolved.
	ErrInvalidArgument = errors.New(errors.KindValidation, CodeInvalidArgument, "request must not be nil")

	// ErrHandlerNotFound is matched by every *HandlerNotFoundError.
	ErrHandlerNotFound = errors.New(errors.KindNotFound, CodeHandlerNotFound, "handler not found")

	// ErrHandlerMismatch is matched by every *HandlerMismatchError.
	ErrHandlerMismatch = errors.New(errors.KindDomain, CodeHandlerMismatch, "resolved handler does not serve the request")
)

// HandlerNotFoundError reports that the resolver has nothing registered
// for a request type.
type HandlerNotFoundError struct {
	Key HandlerKey
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf(
		"handler not found for request %v with response %v: register a handler for it with the resolver",
		e.Key.Request, e.Key.Response,
	)
}

func (e *HandlerNotFoundError) Unwrap() error { return ErrHandlerNotFound }

// HandlerMismatchError reports a resolver that answered with a handler
// bound for another request or response type.
type HandlerMismatchError struct {
	Want HandlerKey
	Got  HandlerKey
}

func (e *HandlerMismatchError) Error() string {
	return fmt.Sprintf("resolved handler for %s cannot serve %s", e.Got, e.Want)
}

func (e *HandlerMismatchError) Unwrap() error { return ErrHandlerMismatch }

// IsCancelled reports whether err comes from a cancelled or expired context.
func IsCancelled(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}
