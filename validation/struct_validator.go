package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/elevenlabs-stt/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(wireName)
	})
	return validate
}

// wireName reports a field by its json name, so errors match what API
// callers sent.
func wireName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return toSnakeCase(f.Name)
	}
	return name
}

// Validate validates a struct using struct tags such as
// `validate:"omitnil,min=1,max=32"`. Failures come back as a validation
// AppError whose "fields" detail lists each FieldError.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, e := range validationErrors {
		v.AddError(toSnakeCase(e.Field()), formatValidationError(e))
	}
	return v.Validate()
}

func formatValidationError(e validator.FieldError) string {
	bound := func(word string) string {
		msg := "must be " + word + " " + e.Param()
		if !isNumeric(e.Kind()) {
			msg += " characters"
		}
		return msg
	}
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return bound("at least")
	case "max", "lte":
		return bound("at most")
	case "url":
		return "must be a valid URL"
	case "startswith":
		return "must start with " + e.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

// toSnakeCase turns ModelID into model_i_d; fields without a json tag are
// expected to be single words.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
