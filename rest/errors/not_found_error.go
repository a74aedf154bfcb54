package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NotFoundError is reported to clients as codes.NotFound.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

// GRPCStatus lets status.FromError and status.Code see the error as
// codes.NotFound.
func (e *NotFoundError) GRPCStatus() *status.Status {
	return status.New(codes.NotFound, e.msg)
}

func NewNotFoundError(text string) error {
	return &NotFoundError{text}
}
