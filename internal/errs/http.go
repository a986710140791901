package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "travelCardNumber", "error": "Travel card number is required." }
//
// Field errors are logged but never sent to the client.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error(). Only Message is
// serialized; the client always receives `{ "message": "..." }`.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logs only.
//   - Message: human-friendly message, the whole response body.
//   - Status: HTTP status code of the response.
//   - Errors: per-field validation errors, logs only.
type HTTPError struct {
	Code    string       `json:"-"`
	Message string       `json:"message"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"-"`

	// cause is the underlying error, if any. It is reachable through
	// errors.Unwrap but never rendered to the client beyond Message.
	cause error
}

// Response is the body written for every failed request.
type Response struct {
	Message string `json:"message"`
}

// Error returns the Message, so printing/logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is reports whether target is also an *HTTPError. It does not compare
// Code/Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
		cause:   e.cause,
	}
}

// Body returns the client-facing representation of the error.
func (e *HTTPError) Body() Response {
	return Response{Message: e.Message}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
