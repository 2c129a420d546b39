package httpserver

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// validationMessage turns a validation failure into a client message.
// Missing required values are reported as requiredMsg.
func validationMessage(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return requiredMsg
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return "Invalid email"
	case "gt", "gte":
		return fe.Field() + " must be greater than " + gtWord(fe.Tag()) + fe.Param()
	case "lte":
		return fe.Field() + " must be at most " + fe.Param()
	default:
		return "Invalid " + fe.Field()
	}
}

func gtWord(tag string) string {
	if tag == "gte" {
		return "or equal to "
	}
	return ""
}
