package errs

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name    string
		err     *HTTPError
		status  int
		code    string
		message string
	}{
		{
			name:    "bad request",
			err:     NewBadRequestError("Travel card number is required.", nil),
			status:  http.StatusBadRequest,
			code:    "BAD_REQUEST",
			message: "Travel card number is required.",
		},
		{
			name:    "not found",
			err:     NewNotFoundError("Fant ingen reisekort på kortnummeret"),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Fant ingen reisekort på kortnummeret",
		},
		{
			name:    "upstream",
			err:     NewUpstreamError(http.StatusServiceUnavailable, "Noe gikk galt ved henting av data", cause),
			status:  http.StatusServiceUnavailable,
			code:    "UPSTREAM_SERVICE_UNAVAILABLE",
			message: "Noe gikk galt ved henting av data",
		},
		{
			name:    "internal",
			err:     NewInternalServerError(cause),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "An error occurred: dial tcp: connection refused",
		},
		{
			name:    "internal without cause",
			err:     NewInternalServerError(nil),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "An error occurred: Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestHTTPError_OnlyMessageIsSerialized(t *testing.T) {
	err := NewBadRequestError("Invalid request body.", []FieldError{{Field: "body", Error: "unexpected EOF"}})

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"message":"Invalid request body."}`, string(body))

	body, marshalErr = json.Marshal(err.Body())
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"message":"Invalid request body."}`, string(body))
}

func TestHTTPError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalServerError(cause)

	assert.ErrorIs(t, err, cause)

	var target *HTTPError
	require.ErrorAs(t, error(err), &target)
	assert.Equal(t, http.StatusInternalServerError, target.Status)
}

func TestHTTPError_WithMessage(t *testing.T) {
	original := NewNotFoundError("a")
	copied := original.WithMessage("b")

	assert.Equal(t, "a", original.Message)
	assert.Equal(t, "b", copied.Message)
	assert.Equal(t, original.Status, copied.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("not found"))
}
