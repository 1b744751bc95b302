package validators

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// report errors under the json field name, not the Go struct field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CustomValidator adapts validator/v10 to echo's Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: newValidate()}
}

// Validate implements echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Check validates a request struct and returns field-keyed error messages,
// or nil when the struct is valid.
func Check(i interface{}) map[string]string {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"general": "Invalid request payload"}
	}

	errs := map[string]string{}
	for _, fieldErr := range validationErrors {
		errs[fieldErr.Field()] = message(fieldErr)
	}
	return errs
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Must not be empty!"
	case "email":
		return "Please provide a valid email address!"
	case "eqfield":
		return "Passwords must match!"
	case "min":
		if fieldErr.Field() == "password" {
			return "please provide a strong password!"
		}
		return "Too short!"
	case "max":
		return "Too long!"
	default:
		return "Invalid value!"
	}
}
