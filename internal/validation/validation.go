// Package validation contains the logic for validating
// request data.
package validation
