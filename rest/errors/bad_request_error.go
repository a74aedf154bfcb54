package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// BadRequestError is reported to clients as codes.InvalidArgument.
type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string {
	return e.msg
}

// GRPCStatus lets status.FromError and status.Code see the error as
// codes.InvalidArgument.
func (e *BadRequestError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.msg)
}

func NewBadRequestError(text string) error {
	return &BadRequestError{text}
}
