// Package validation defines the typed request bodies accepted by the API and
// validates them at the boundary.
package validation

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"

	"cinelist/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = newValidator()
	strict   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Request is a body that can clean itself before validation.
type Request interface {
	Normalize()
}

// Struct normalizes req and validates its tags. Failures are returned as a
// models.AppError with code VALIDATION_ERROR naming the first bad field.
func Struct(req Request) error {
	req.Normalize()

	err := validate.Struct(req)
	if err == nil {
		if c, ok := req.(interface{ check() error }); ok {
			return c.check()
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return models.NewValidationError("Invalid request body")
	}
	return models.NewValidationError(message(verrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "http_url":
		return field + " must be an http or https URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// Sanitize strips all markup from free text and trims it.
func Sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func sanitizePtr(s *string) {
	if s != nil {
		*s = Sanitize(*s)
	}
}
