package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", NewNotFoundError("missing")), http.StatusNotFound},
		{NewConflictError("exists"), http.StatusConflict},
		{NewInternalError("boom"), http.StatusInternalServerError},
		{status.Error(codes.NotFound, "table"), http.StatusNotFound},
		{status.Error(codes.AlreadyExists, "table"), http.StatusConflict},
		{status.Error(codes.PermissionDenied, "no"), http.StatusForbidden},
		{status.Error(codes.Unavailable, "down"), http.StatusServiceUnavailable},
		{status.Error(codes.Internal, "oops"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), "%v", tt.err)
	}
}

func TestGatewayErrorsCarryCodes(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{NewNotFoundError("missing"), codes.NotFound},
		{NewConflictError("exists"), codes.AlreadyExists},
		{NewBadRequestError("bad"), codes.InvalidArgument},
		{NewInternalError("boom"), codes.Internal},
		{fmt.Errorf("wrapped: %w", NewNotFoundError("missing")), codes.NotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(tt.err), "%v", tt.err)
	}

	s, ok := status.FromError(NewConflictError("table users already exists"))
	assert.True(t, ok)
	assert.Equal(t, "table users already exists", s.Message())

	var notFound *NotFoundError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", NewNotFoundError("missing")), &notFound))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "family missing", Message(NewNotFoundError("family missing")))
	assert.Equal(t, "table missing", Message(status.Error(codes.NotFound, "table missing")))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestTranslateValidatorError(t *testing.T) {
	validate := validator.New()
	uni := ut.New(en.New(), en.New())
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	type payload struct {
		TableID string `validate:"required"`
	}
	err := TranslateValidatorError(validate.Struct(payload{}), trans)
	assert.EqualError(t, err, "TableID is a required field")

	plain := errors.New("plain")
	assert.Equal(t, plain, TranslateValidatorError(plain, trans))
}
