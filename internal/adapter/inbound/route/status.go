package route

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pkggrpc "github.com/0xsj/overwatch-pkg/grpc"

	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
	"github.com/0xsj/overwatch-mediator/pkg/validation"
)

// Status classifies a dispatch error for any transport.
// Domain errors use pkg/errors with Kind, so the pkg/grpc mapping handles
// them; routing, validation and cancellation are mapped here.
// Status(nil) is OK.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	var failed *validation.FailedError
	switch {
	case errors.As(err, &failed):
		return validationStatus(failed)
	case errors.Is(err, mediator.ErrHandlerNotFound), errors.Is(err, domainerror.ErrRequestUnknown):
		return status.New(codes.Unimplemented, err.Error())
	case errors.Is(err, domainerror.ErrRequestInvalid), errors.Is(err, mediator.ErrInvalidArgument):
		return status.New(codes.InvalidArgument, err.Error())
	case mediator.IsCancelled(err):
		return status.FromContextError(err)
	}

	return pkggrpc.ToStatus(err)
}

// validationStatus reports each failed field as a BadRequest violation.
func validationStatus(failed *validation.FailedError) *status.Status {
	st := status.New(codes.InvalidArgument, failed.Error())

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(failed.Result.Errors))
	for _, fe := range failed.Result.Errors {
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       fe.Field,
			Description: fe.Message,
		})
	}

	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st
	}
	return detailed
}

// FieldViolations returns the BadRequest violations attached to st.
func FieldViolations(st *status.Status) []validation.FieldError {
	var out []validation.FieldError
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			out = append(out, validation.FieldError{Field: v.GetField(), Message: v.GetDescription()})
		}
	}
	return out
}
