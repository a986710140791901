package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/travelcard-api/internal/errs"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "api error",
			err:     errs.NewNotFoundError("Fant ingen reisekort på kortnummeret"),
			status:  http.StatusNotFound,
			message: "Fant ingen reisekort på kortnummeret",
		},
		{
			name:    "wrapped api error",
			err:     errors.Wrap(errs.NewBadRequestError("Travel card number is required.", nil), "handler"),
			status:  http.StatusBadRequest,
			message: "Travel card number is required.",
		},
		{
			name:    "unknown route",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			message: "Route not found",
		},
		{
			name:    "method not allowed",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			message: "Method Not Allowed",
		},
		{
			name:    "echo internal error",
			err:     echo.NewHTTPError(http.StatusInternalServerError).SetInternal(errors.New("boom")),
			status:  http.StatusInternalServerError,
			message: "An error occurred: boom",
		},
		{
			name:    "plain error",
			err:     errors.New("unexpected end of JSON input"),
			status:  http.StatusInternalServerError,
			message: "An error occurred: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := toHTTPError(tt.err)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}
