// Package rpc exposes the BigtableTableAdmin and Operations services as typed
// stubs over a pluggable transport, together with the server side descriptors
// used to register implementations on a grpc.Server.
//
// The stubs are thin: every method forwards the generated request message to
// the transport and returns the generated reply. Retries, batching and request validation
// are left to the transport or the caller.
package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/datastax/bigtable-admin-apis/wire"
)

// Transport carries a single unary call. method is the full gRPC method name,
// for example "/google.bigtable.admin.v2.BigtableTableAdmin/GetTable".
//
// *grpc.ClientConn satisfies Transport directly. NewGRPCTransport adds call
// options shared by every call.
type Transport interface {
	Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error
}

// TransportFunc adapts a byte level function to Transport. The function
// receives the encoded request and returns the encoded reply.
type TransportFunc func(ctx context.Context, method string, req []byte) ([]byte, error)

func (f TransportFunc) Invoke(ctx context.Context, method string, args, reply any, _ ...grpc.CallOption) error {
	in, ok := args.(wire.Message)
	if !ok {
		return fmt.Errorf("unable to marshal %T: not a protobuf message", args)
	}
	out, ok := reply.(wire.Message)
	if !ok {
		return fmt.Errorf("unable to unmarshal into %T: not a protobuf message", reply)
	}
	b, err := wire.Marshal(in)
	if err != nil {
		return err
	}
	res, err := f(ctx, method, b)
	if err != nil {
		return err
	}
	return wire.Unmarshal(res, out)
}

// GRPCTransport sends calls over a gRPC connection.
type GRPCTransport struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

// NewGRPCTransport wraps cc. opts are added to every call.
func NewGRPCTransport(cc grpc.ClientConnInterface, opts ...grpc.CallOption) *GRPCTransport {
	return &GRPCTransport{cc: cc, opts: opts}
}

func (t *GRPCTransport) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	all := make([]grpc.CallOption, 0, len(t.opts)+len(opts))
	all = append(all, t.opts...)
	all = append(all, opts...)
	return t.cc.Invoke(ctx, method, args, reply, all...)
}
