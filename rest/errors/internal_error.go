package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InternalError is reported to clients as codes.Internal.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string {
	return e.msg
}

// GRPCStatus lets status.FromError and status.Code see the error as
// codes.Internal.
func (e *InternalError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, e.msg)
}

func NewInternalError(text string) error {
	return &InternalError{text}
}
