package brdoc

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the cpfcnpj, brphone and cep tags to v.
func RegisterValidations(v *validator.Validate) error {
	tags := map[string]func(string) bool{
		"cpfcnpj": IsValidDocument,
		"brphone": ValidatePhone,
		"cep":     ValidateCEP,
	}

	for tag, check := range tags {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("brdoc.RegisterValidations: %s: %w", tag, err)
		}
	}
	return nil
}
