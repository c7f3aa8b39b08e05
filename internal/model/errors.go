package model

import "errors"

// Common errors used across the application
var (
	// Credential errors
	ErrCredentialNotFound = errors.New("credential not found")

	// Session errors
	ErrNotAuthenticated = errors.New("not logged in")

	// Input errors
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrInvalidSeats     = errors.New("number of seats must be greater than 0")
)
