// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure path of the API one consistent,
// client-facing shape: a JSON object with a human-readable `message`
// field and an HTTP status code. There is no structured error code in the
// response body; Code exists for logs only.
package errs
