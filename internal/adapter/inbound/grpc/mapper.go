package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/0xsj/overwatch-mediator/internal/adapter/inbound/route"
	domainerror "github.com/0xsj/overwatch-mediator/internal/domain/error"
)

// Dispatch message fields.
const (
	fieldRequest = "request"
	fieldPayload = "payload"
)

func toProtoDispatch(name string, payload map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{fieldRequest: name}
	if payload != nil {
		fields[fieldPayload] = payload
	}
	return structpb.NewStruct(fields)
}

// fromProtoDispatch returns the request name and its JSON payload.
func fromProtoDispatch(in *structpb.Struct) (string, []byte, error) {
	name := in.GetFields()[fieldRequest].GetStringValue()
	if name == "" {
		return "", nil, fmt.Errorf("%w: %q is required", domainerror.ErrRequestInvalid, fieldRequest)
	}

	payload := in.GetFields()[fieldPayload].GetStructValue()
	if payload == nil {
		return name, nil, nil
	}

	data, err := json.Marshal(payload.AsMap())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domainerror.ErrRequestInvalid, err)
	}
	return name, data, nil
}

func toProtoResult(result any) (*structpb.Struct, error) {
	view, err := route.View(result)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(view)
}
