package rpc

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/longrunning/autogen/longrunningpb"
	"google.golang.org/grpc/status"

	"github.com/datastax/bigtable-admin-apis/wire"
)

// DefaultPollInterval is the delay between two GetOperation calls in
// WaitOperation.
const DefaultPollInterval = time.Second

// ErrOperationPending is returned when the result of an operation that has
// not finished is requested.
var ErrOperationPending = errors.New("operation is not done")

// WaitOperation polls op through ops until it is done and returns its final
// state. A failed operation is returned with a nil error; use OperationError
// to inspect the outcome. interval <= 0 uses DefaultPollInterval.
func WaitOperation(ctx context.Context, ops Operations, op *longrunningpb.Operation, interval time.Duration) (*longrunningpb.Operation, error) {
	if op == nil {
		return nil, wire.ErrNilMessage
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !op.GetDone() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		next, err := ops.GetOperation(ctx, &longrunningpb.GetOperationRequest{Name: op.GetName()})
		if err != nil {
			return nil, err
		}
		op = next
	}
	return op, nil
}

// WaitResponse waits for op and decodes its response into resp. The error of
// a failed operation is returned as a gRPC status error.
func WaitResponse(ctx context.Context, ops Operations, op *longrunningpb.Operation, interval time.Duration, resp wire.Message) error {
	done, err := WaitOperation(ctx, ops, op, interval)
	if err != nil {
		return err
	}
	return UnmarshalResponse(done, resp)
}

// OperationError returns the failure of op as a gRPC status error, or nil
// when op has not failed.
func OperationError(op *longrunningpb.Operation) error {
	if s := op.GetError(); s != nil {
		return status.ErrorProto(s)
	}
	return nil
}

// UnmarshalResponse decodes the response of a finished operation into resp.
func UnmarshalResponse(op *longrunningpb.Operation, resp wire.Message) error {
	if op == nil {
		return wire.ErrNilMessage
	}
	if !op.GetDone() {
		return ErrOperationPending
	}
	if err := OperationError(op); err != nil {
		return err
	}
	return wire.UnmarshalAny(op.GetResponse(), resp)
}

// UnmarshalMetadata decodes the metadata of op into meta.
func UnmarshalMetadata(op *longrunningpb.Operation, meta wire.Message) error {
	if op == nil {
		return wire.ErrNilMessage
	}
	return wire.UnmarshalAny(op.GetMetadata(), meta)
}
