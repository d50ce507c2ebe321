package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Transaction type validation
	validate.RegisterValidation("txn_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		for _, v := range []string{"deposit", "withdrawal", "transfer"} {
			if t == v {
				return true
			}
		}
		return false
	})

	// Account number: digits only
	validate.RegisterValidation("account_number", func(fl validator.FieldLevel) bool {
		n := fl.Field().String()
		if len(n) < 6 || len(n) > 20 {
			return false
		}
		for _, c := range n {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	})

	// Transaction PIN: 4-6 digits
	validate.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		if len(p) < 4 || len(p) > 6 {
			return false
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "txn_type":
			errors[field] = "Invalid type. Must be: deposit, withdrawal, or transfer"
		case "account_number":
			errors[field] = "Invalid account number"
		case "pin":
			errors[field] = "PIN must be 4-6 digits"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
