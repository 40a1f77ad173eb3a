package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names of the catalog dispatch API.
const (
	ServiceName             = "catalog.v1.CatalogService"
	DispatchFullMethodName  = "/" + ServiceName + "/Dispatch"
	dispatchMethodName      = "Dispatch"
	catalogServiceProtoFile = "catalog/v1/catalog.proto"
)

// CatalogServiceServer is the server API of the catalog dispatch service.
// Dispatch takes {"request": <name>, "payload": {...}} and returns the
// rendered result.
type CatalogServiceServer interface {
	Dispatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// CatalogServiceDesc describes the catalog dispatch service.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: dispatchMethodName,
			Handler:    dispatchHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: catalogServiceProtoFile,
}

func dispatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: DispatchFullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).Dispatch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogServiceClient is the client API of the catalog dispatch service.
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient creates a client on cc.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

// Dispatch sends the named request with payload.
func (c *CatalogServiceClient) Dispatch(ctx context.Context, name string, payload map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := toProtoDispatch(name, payload)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DispatchFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
