package proto

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc/encoding"
	grpcproto "google.golang.org/grpc/encoding/proto"
	"google.golang.org/grpc/mem"
	"google.golang.org/protobuf/proto"
)

// Content subtypes the service accepts. ProtoCodecName is gRPC's default,
// used by protobuf clients of zkp_auth.Auth; CBORCodecName is opt-in.
const (
	ProtoCodecName = grpcproto.Name
	CBORCodecName  = "cbor"
)

// protoCodec replaces gRPC's default codec. Service messages are encoded
// with protowire; any other proto.Message goes through protobuf-go.
type protoCodec struct{}

func (protoCodec) Marshal(v any) (mem.BufferSlice, error) {
	var (
		b   []byte
		err error
	)
	switch m := v.(type) {
	case wireMessage:
		b = m.appendWire(nil)
	case proto.Message:
		b, err = proto.Marshal(m)
	default:
		return nil, fmt.Errorf("proto codec: cannot marshal %T", v)
	}
	if err != nil {
		return nil, err
	}
	return mem.BufferSlice{mem.SliceBuffer(b)}, nil
}

func (protoCodec) Unmarshal(data mem.BufferSlice, v any) error {
	b := data.Materialize()
	switch m := v.(type) {
	case wireMessage:
		return m.unmarshalWire(b)
	case proto.Message:
		return proto.Unmarshal(b, m)
	default:
		return fmt.Errorf("proto codec: cannot unmarshal into %T", v)
	}
}

func (protoCodec) Name() string {
	return ProtoCodecName
}

type cborCodec struct{}

func (cborCodec) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (cborCodec) Name() string {
	return CBORCodecName
}

func init() {
	encoding.RegisterCodecV2(protoCodec{})
	encoding.RegisterCodec(cborCodec{})
}
