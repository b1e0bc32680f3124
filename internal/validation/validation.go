// Package validation checks inputs before they reach the engine.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/shopspring/decimal"
)

// V is the singleton validator instance
var V *validator.Validate

func init() {
	V = validator.New()

	// Exact bounds for decimal fields; gte/lte only see numeric kinds.
	_ = V.RegisterValidation("decimal_gte", decimalBound(decimal.Decimal.GreaterThanOrEqual))
	_ = V.RegisterValidation("decimal_lte", decimalBound(decimal.Decimal.LessThanOrEqual))

	V.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// decimalBound compares a decimal field against the tag parameter.
func decimalBound(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}

// ValidationErrors is a collection of field failures.
type ValidationErrors []*domain.InvalidInputError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Reason))
	}
	return strings.Join(msgs, "; ")
}

// As lets errors.As extract the first failure as a *domain.InvalidInputError.
func (e ValidationErrors) As(target interface{}) bool {
	if len(e) == 0 {
		return false
	}
	if t, ok := target.(**domain.InvalidInputError); ok {
		*t = e[0]
		return true
	}
	return false
}

// Validate validates a struct and returns ValidationErrors if invalid
func Validate(v any) error {
	if err := V.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatValidationErrors(verrs)
		}
		return err
	}
	return nil
}

// ValidateInput validates one evaluation input.
func ValidateInput(in domain.EvaluationInput) error {
	return Validate(in)
}

type incomeInput struct {
	Income decimal.Decimal `json:"income" validate:"decimal_gte=0"`
}

// ValidateIncome checks a standalone income amount, for callers that have no
// household to validate alongside it.
func ValidateIncome(income decimal.Decimal) error {
	return Validate(incomeInput{Income: income})
}

// ValidateScenarios validates a list of named scenarios. Names must be unique.
func ValidateScenarios(scenarios []domain.NamedInput) error {
	var all ValidationErrors
	seen := make(map[string]bool, len(scenarios))
	for i, s := range scenarios {
		if err := Validate(s); err != nil {
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, v := range verrs {
				all = append(all, &domain.InvalidInputError{
					Field:  fmt.Sprintf("scenarios[%d].%s", i, v.Field),
					Reason: v.Reason,
				})
			}
			continue
		}
		if seen[s.Name] {
			all = append(all, &domain.InvalidInputError{
				Field:  fmt.Sprintf("scenarios[%d].name", i),
				Reason: fmt.Sprintf("duplicate scenario name %q", s.Name),
			})
		}
		seen[s.Name] = true
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, e := range errs {
		out = append(out, &domain.InvalidInputError{
			Field:  fieldPath(e),
			Reason: getErrorMessage(e),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// getErrorMessage returns a human-readable error message for a validation error
func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte", "decimal_gte":
		if e.Param() == "0" {
			return "must not be negative"
		}
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", e.Param())
	case "lte", "decimal_lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("failed validation: %s", e.Tag())
	}
}

// IsValidationError checks if an error is a ValidationErrors
func IsValidationError(err error) bool {
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
