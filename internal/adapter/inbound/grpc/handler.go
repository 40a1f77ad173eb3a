package grpc

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/0xsj/overwatch-pkg/log"

	"github.com/0xsj/overwatch-mediator/internal/adapter/inbound/route"
	"github.com/0xsj/overwatch-mediator/pkg/mediator"
)

// Dispatcher sends a request to its handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, req mediator.AnyRequest) (any, error)
}

// Handler implements CatalogServiceServer on top of the mediator.
type Handler struct {
	dispatcher Dispatcher
	routes     *route.Table
	logger     log.Logger
}

// HandlerConfig holds the collaborators of the gRPC handler.
type HandlerConfig struct {
	Dispatcher Dispatcher
	Routes     *route.Table
	Logger     log.Logger
}

// NewHandler creates a new gRPC handler.
func NewHandler(cfg HandlerConfig) *Handler {
	routes := cfg.Routes
	if routes == nil {
		routes = route.Catalog()
	}
	return &Handler{
		dispatcher: cfg.Dispatcher,
		routes:     routes,
		logger:     cfg.Logger,
	}
}

var _ CatalogServiceServer = (*Handler)(nil)

func (h *Handler) Dispatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	name, payload, err := fromProtoDispatch(in)
	if err != nil {
		return nil, toGRPCError(err)
	}

	req, err := h.routes.Decode(name, payload)
	if err != nil {
		return nil, toGRPCError(err)
	}

	result, err := h.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return nil, toGRPCError(err)
	}

	out, err := toProtoResult(result)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to render dispatch result",
				log.String("request", name),
				log.String("error", err.Error()),
			)
		}
		return nil, toGRPCError(err)
	}
	return out, nil
}
