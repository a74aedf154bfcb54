package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ConflictError is reported to clients as codes.AlreadyExists.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string {
	return e.msg
}

// GRPCStatus lets status.FromError and status.Code see the error as
// codes.AlreadyExists.
func (e *ConflictError) GRPCStatus() *status.Status {
	return status.New(codes.AlreadyExists, e.msg)
}

func NewConflictError(text string) error {
	return &ConflictError{text}
}
