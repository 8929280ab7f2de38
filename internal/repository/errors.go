package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errors.New("duplicate entity")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInsufficientCredits is returned when a metering charge exceeds balance
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
