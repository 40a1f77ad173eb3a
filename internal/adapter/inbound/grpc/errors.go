package grpc

import (
	"github.com/0xsj/overwatch-mediator/internal/adapter/inbound/route"
)

// toGRPCError converts dispatch errors to gRPC status errors.
func toGRPCError(err error) error {
	if err == nil {
		return nil
	}
	return route.Status(err).Err()
}
