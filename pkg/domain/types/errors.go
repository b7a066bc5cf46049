package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidOption is returned when a command line option or constructor argument is invalid
	ErrInvalidOption = goerr.New("invalid option")

	// ErrValidationFailed is returned when a query or input does not satisfy its invariants
	ErrValidationFailed = goerr.New("validation failed")

	// ErrInvalidResponse is returned when GitHub answers with a body that cannot be decoded.
	// It is not retried.
	ErrInvalidResponse = goerr.New("invalid response from GitHub")
)
