// Package validation guards the boundary where user-entered strings become pricing fields.
package validation

import (
	"errors"
	"fmt"

	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// pricingInput mirrors domain.Pricing with validation rules.
// Empty means "inherit"; anything else must be a plain decimal number.
type pricingInput struct {
	Discount string `validate:"omitempty,max=32,numeric"`
	Rebate   string `validate:"omitempty,max=32,numeric"`
}

var fieldNames = map[string]string{
	"Discount": "discount_percentage",
	"Rebate":   "rebate_percentage",
}

// Validator checks pricing strings before they reach the tree engine.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Pricing returns a *domain.ValidationError for the first malformed field, nil otherwise.
func (val *Validator) Pricing(p domain.Pricing) error {
	in := pricingInput{Discount: p.Discount, Rebate: p.Rebate}
	if err := val.v.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &domain.ValidationError{
				Field:  fieldNames[fe.StructField()],
				Reason: reason(fe),
				Value:  fmt.Sprint(fe.Value()),
			}
		}
		return fmt.Errorf("validate pricing: %w", err)
	}

	// numeric accepts what decimal parses, but keep the parser as the final word.
	for _, f := range [...]struct{ name, value string }{
		{"discount_percentage", p.Discount},
		{"rebate_percentage", p.Rebate},
	} {
		if f.value == "" {
			continue
		}
		if _, err := decimal.NewFromString(f.value); err != nil {
			return &domain.ValidationError{Field: f.name, Reason: "must be a decimal number", Value: f.value}
		}
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "numeric":
		return "must be a decimal number"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "failed " + fe.Tag() + " check"
}
