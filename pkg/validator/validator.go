package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Report fields by their JSON names, which is what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return formatValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// formatValidationErrors produces the user-facing (Portuguese) message for
// each failed field.
func formatValidationErrors(errs validator.ValidationErrors) error {
	var messages []string
	for _, err := range errs {
		var message string
		field := strings.ToLower(err.Field())

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("o campo %s é obrigatório", field)
		case "email":
			message = fmt.Sprintf("o campo %s deve ser um e-mail válido", field)
		case "min":
			message = fmt.Sprintf("o campo %s deve ter no mínimo %s caracteres", field, err.Param())
		case "max":
			message = fmt.Sprintf("o campo %s deve ter no máximo %s caracteres", field, err.Param())
		case "gte":
			message = fmt.Sprintf("o campo %s deve ser maior ou igual a %s", field, err.Param())
		case "lte":
			message = fmt.Sprintf("o campo %s deve ser menor ou igual a %s", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("o campo %s deve ser um de: %s", field, err.Param())
		default:
			message = fmt.Sprintf("o campo %s é inválido (%s)", field, err.Tag())
		}
		messages = append(messages, message)
	}

	return errors.New(strings.Join(messages, "; "))
}
