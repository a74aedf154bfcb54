package errors

import (
	"errors"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// TranslateValidatorError turns the field errors reported by the validator
// into a single readable error. Other errors are returned unchanged.
func TranslateValidatorError(err error, trans ut.Translator) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := fieldErrs.Translate(trans)
	vals := make([]string, 0, len(errs))
	for _, fe := range fieldErrs {
		vals = append(vals, errs[fe.Namespace()])
	}
	return errors.New(strings.Join(vals, " "))
}
