package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/loan"
	"loan-origination/pkg/id"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report fields under their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query", "param"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	// decimals are validated through their string form; a null decimal is empty
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		switch d := f.Interface().(type) {
		case decimal.Decimal:
			return d.String()
		case decimal.NullDecimal:
			if !d.Valid {
				return ""
			}
			return d.Decimal.String()
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})

	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.IsID32(fl.Field().String())
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.Equal(d.Round(2))
	})
	_ = v.RegisterValidation("decgte", func(fl validator.FieldLevel) bool {
		return compareDecimal(fl) >= 0
	})
	_ = v.RegisterValidation("declte", func(fl validator.FieldLevel) bool {
		c := compareDecimal(fl)
		return c <= 0 && c != errCompare
	})
	_ = v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		_, err := loan.ParseLoanType(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		_, err := loan.ParseStatus(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

const errCompare = -2

// compareDecimal compares the field with the tag parameter; errCompare when
// either side does not parse.
func compareDecimal(fl validator.FieldLevel) int {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return errCompare
	}
	bound, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return errCompare
	}
	return d.Cmp(bound)
}

// ToFieldErrors maps validator errors to readable per-field messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		out = append(out, FieldError{Field: e.Field(), Message: fieldMessage(e)})
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "hex32":
		return "must be 32-char lowercase hex"
	case "decimal":
		return "must be a decimal number"
	case "dec2":
		return "must have at most 2 decimal places"
	case "decgte", "gte":
		return "must be greater than or equal to " + e.Param()
	case "declte", "lte":
		return "must be less than or equal to " + e.Param()
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "loantype":
		return "must be one of PERSONAL, HOME, EDUCATION, BUSINESS, VEHICLE"
	case "loanstatus":
		return "must be one of PENDING, UNDER_REVIEW, APPROVED, REJECTED"
	case "oneof":
		return "must be one of " + e.Param()
	}
	return e.Tag() + " validation failed"
}
