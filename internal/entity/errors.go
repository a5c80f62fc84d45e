package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound      = errors.New("session not found")
	ErrCorruptedSession     = errors.New("session record is corrupted")
	ErrNoQuestionsGenerated = errors.New("no questions generated")

	// Validation errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")
)
