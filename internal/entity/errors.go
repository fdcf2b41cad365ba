package entity

import "errors"

// Domain errors
var (
	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrEmptyItems       = errors.New("submission items must not be empty")
	ErrTooManyItems     = errors.New("too many submission items")

	// Upstream errors
	ErrLLMUnavailable = errors.New("llm service unavailable")
)
