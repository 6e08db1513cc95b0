package dto

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/lac-hong-legacy/ven_shop/shared"
)

var validate *validator.Validate

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("slug", validateSlug)
	validate.RegisterValidation("plausible_email", validatePlausibleEmail)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

// validatePlausibleEmail applies the same rule the sanitizer uses, so a request that
// validates will also survive SanitizeEmail.
func validatePlausibleEmail(fl validator.FieldLevel) bool {
	return shared.SanitizeEmail(fl.Field().String()) != ""
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, fieldError := range validationErrors {
		var message string

		switch fieldError.Tag() {
		case "required":
			message = fieldError.Field() + " is required"
		case "email", "plausible_email":
			message = "Invalid email format"
		case "min":
			message = fieldError.Field() + " must be at least " + fieldError.Param()
		case "max":
			message = fieldError.Field() + " must be at most " + fieldError.Param()
		case "gte":
			message = fieldError.Field() + " must be greater than or equal to " + fieldError.Param()
		case "len":
			message = fieldError.Field() + " must be exactly " + fieldError.Param() + " characters"
		case "slug":
			message = fieldError.Field() + " must contain only lowercase letters, digits and dashes"
		case "oneof":
			message = fieldError.Field() + " must be one of: " + fieldError.Param()
		case "iso4217":
			message = fieldError.Field() + " must be an ISO 4217 currency code"
		default:
			message = fieldError.Field() + " is invalid"
		}

		errs = append(errs, ValidationError{
			Field:   fieldError.Field(),
			Message: message,
		})
	}

	return errs
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
