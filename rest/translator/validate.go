package translator

import (
	"regexp"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	e "github.com/datastax/bigtable-admin-apis/rest/errors"
)

var (
	validate *validator.Validate
	trans    ut.Translator

	tableIDPattern  = regexp.MustCompile(`^[_a-zA-Z0-9][-_.a-zA-Z0-9]*$`)
	familyIDPattern = regexp.MustCompile(`^[-_.a-zA-Z0-9]+$`)
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterValidation("tableid", func(fl validator.FieldLevel) bool {
		return tableIDPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("family", func(fl validator.FieldLevel) bool {
		return familyIDPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})

	registerMessage("required", "{0} is a required field")
	registerMessage("required_without", "{0} is required unless {1} is set")
	registerMessage("tableid", "{0} must start with a letter, digit or '_' and contain only letters, digits, '_', '-' and '.'")
	registerMessage("family", "{0} may only contain letters, digits, '_', '-' and '.'")
	registerMessage("duration", "{0} must be a positive duration such as 24h")
}

func registerMessage(tag, text string) {
	_ = validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, fe.Field(), fe.Param())
		return t
	})
}

// Validate checks obj against its validate tags and reports every failure in one
// readable BadRequestError.
func Validate(obj interface{}) error {
	if err := validate.Struct(obj); err != nil {
		return e.NewBadRequestError(e.TranslateValidatorError(err, trans).Error())
	}
	return nil
}
