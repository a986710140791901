// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields) defined in struct tags and turns validation
// errors into the single message the client receives.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/travelcard-api/internal/errs"
)

// InvalidBodyMessage is returned when a body field can not be decoded into
// its Go type.
const InvalidBodyMessage = "Invalid request body."

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs validator.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// NewValidator returns a validator that reports fields by their `label`
// tag, falling back to the json name, so messages read like
// "Travel card number is required.".
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldLabel)
	return v
}

func fieldLabel(f reflect.StructField) string {
	if label := f.Tag.Get("label"); label != "" {
		return label
	}
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// BindAndValidate decodes the JSON request body into payload and validates it.
//
// The body is read like a browser-side `const { field } = await req.json()`:
//  1. It is parsed as JSON whatever its Content-Type is. An empty or
//     unparsable body is an unexpected failure (500).
//  2. A `null` body can not be destructured and is a 500 as well.
//  3. Other non-object values (arrays, numbers, strings, booleans) carry no
//     fields, so payload stays empty and validation reports the missing
//     fields.
//  4. An object is decoded into payload. A field of the wrong Go type is a
//     400 with InvalidBodyMessage.
//  5. payload.Validate() applies validation rules; the message of the first
//     field error becomes the 400 response message.
//
// NOTE: payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := decodeBody(c, payload); err != nil {
		return err
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(fieldErrors[0].Error, fieldErrors)
	}

	return nil
}

// ErrNullBody is returned for a request body that is the JSON literal null.
var ErrNullBody = errors.New("cannot read fields of a null request body")

// errEmptyBody mirrors the parse error of an empty JSON document.
var errEmptyBody = errors.New("unexpected end of JSON input")

func decodeBody(c echo.Context, payload Validatable) error {
	var raw json.RawMessage
	if c.Request().Body != nil {
		if err := c.Echo().JSONSerializer.Deserialize(c, &raw); err != nil {
			return errs.NewInternalServerError(parseError(err))
		}
	}

	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0:
		return errs.NewInternalServerError(errEmptyBody)
	case raw[0] == 'n':
		return errs.NewInternalServerError(ErrNullBody)
	case raw[0] != '{':
		return nil
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		return errs.NewBadRequestError(InvalidBodyMessage, []errs.FieldError{{Field: "body", Error: err.Error()}})
	}
	return nil
}

// parseError unwraps echo's decode error down to the JSON parser error.
func parseError(err error) error {
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Internal != nil {
		return echoErr.Internal
	}
	return err
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation result at all (e.g. InvalidValidationError).
		return []errs.FieldError{{Field: "", Error: errs.ValidationError(err).Message}}
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required.", field)

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("%s must be at least %s characters.", field, err.Param())
			} else {
				msg = fmt.Sprintf("%s must be at least %s.", field, err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("%s must not exceed %s characters.", field, err.Param())
			} else {
				msg = fmt.Sprintf("%s must not exceed %s.", field, err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("%s must be one of: %s.", field, err.Param())

		default:
			// Includes tag name and param (if any) to help debugging.
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.StructField(),
			Error: msg,
		})
	}

	return fieldErrors
}
