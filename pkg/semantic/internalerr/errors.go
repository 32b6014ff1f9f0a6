// Package internalerr holds the sentinel errors shared across the analyzer
// packages so callers can branch with errors.Is.
package internalerr

import "errors"

var (
	// ErrInvalidInput marks caller-supplied input that cannot be analyzed
	// or fetched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig marks a configuration file that parsed but fails
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
