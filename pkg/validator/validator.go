package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	dniRegex   = regexp.MustCompile(`^\d{8}$`)
	phoneRegex = regexp.MustCompile(`^\d{9}$`)
	alnumRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report errors under the json field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// dni: exactly 8 digits
	v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return dniRegex.MatchString(fl.Field().String())
	})

	// phone9: exactly 9 digits
	v.RegisterValidation("phone9", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})

	// code12: alphanumeric, at most 12 characters. The storage column is
	// wider; 12 is the business rule.
	v.RegisterValidation("code12", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return len(value) <= 12 && alnumRegex.MatchString(value)
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors turns validator failures into a field → message map.
// All failing fields are reported, not just the first.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "dni":
				errors[field] = field + " must contain exactly 8 digits"
			case "phone9":
				errors[field] = field + " must have 9 digits"
			case "code12":
				errors[field] = field + " must be at most 12 alphanumeric characters"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
