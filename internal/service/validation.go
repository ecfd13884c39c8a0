package service

import (
	"errors"
	"fmt"
	"strings"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that understands the cpfcnpj, brphone and
// cep tags used by the entities.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := brdoc.RegisterValidations(v); err != nil {
		return nil, fmt.Errorf("service.NewValidator: %w", err)
	}
	return v, nil
}

// validateOrder reports every problem at once. Each joined error wraps
// entity.ErrInvalidData.
func validateOrder(v *validator.Validate, order *entity.Order) error {
	var errs []error

	if strings.TrimSpace(order.Customer.Name) == "" {
		errs = append(errs, invalid("customer.name", "nome do cliente é obrigatório"))
	}

	if err := v.Struct(order); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", entity.ErrInvalidData, err)
		}
		for _, fe := range fieldErrs {
			if fe.StructNamespace() == "Order.Customer.Name" && fe.Tag() == "required" {
				continue
			}
			errs = append(errs, invalid(fe.Namespace(), describe(fe)))
		}
	}

	for i, item := range order.Items {
		if item == nil {
			continue
		}
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			errs = append(errs, invalid(fmt.Sprintf("items[%d]", i), "quantidade e valor unitário não podem ser negativos"))
		}
	}

	return errors.Join(errs...)
}

func invalid(field, msg string) error {
	return fmt.Errorf("%s: %s: %w", field, msg, entity.ErrInvalidData)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "campo obrigatório"
	case "cpfcnpj":
		return "CPF/CNPJ inválido"
	case "brphone":
		return "telefone inválido"
	case "cep":
		return "CEP inválido"
	case "email":
		return "e-mail inválido"
	case "oneof":
		return "valor fora das opções permitidas: " + fe.Param()
	case "datetime":
		return "data inválida"
	case "min":
		return "informe ao menos " + fe.Param()
	case "max", "len":
		return "tamanho inválido"
	default:
		return "valor inválido"
	}
}
