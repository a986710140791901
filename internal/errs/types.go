package errs

import (
	"net/http"
)

// InternalErrorPrefix starts the message of every unexpected failure.
const InternalErrorPrefix = "An error occurred: "

func codeFor(status int) string {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	return MakeUpperCaseWithUnderscores(text)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// errors is an optional slice of field errors (validation errors).
func NewBadRequestError(message string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusBadRequest),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusNotFound),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewUpstreamError creates an HTTPError that passes an upstream status code
// through to the client unchanged.
func NewUpstreamError(status int, message string, cause error) *HTTPError {
	return &HTTPError{
		Code:    "UPSTREAM_" + codeFor(status),
		Message: message,
		Status:  status,
		cause:   cause,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message carries the underlying error text verbatim:
//
//	An error occurred: <err.Error()>
func NewInternalServerError(err error) *HTTPError {
	message := http.StatusText(http.StatusInternalServerError)
	if err != nil {
		message = err.Error()
	}

	return &HTTPError{
		Code:    codeFor(http.StatusInternalServerError),
		Message: InternalErrorPrefix + message,
		Status:  http.StatusInternalServerError,
		cause:   err,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), nil)
}
