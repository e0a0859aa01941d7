package middleware

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var (
	phoneRegex   = regexp.MustCompile(`^\+91[0-9]{10}$`)
	otpRegex     = regexp.MustCompile(`^[0-9]{6}$`)
	pincodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("in_phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
		return otpRegex.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodeRegex.MatchString(fl.Field().String())
	})
}

// ValidateRequest validates a struct against its validation tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errors
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "in_phone":
		return "Phone number must be +91 followed by 10 digits"
	case "otp":
		return "OTP must be 6 digits"
	case "pincode":
		return "Pincode must be 6 digits"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + e.Param()
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "oneof":
		return "Value must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
