package syncer

import "errors"

var (
	// ErrAuthorizationDenied indicates the metering gateway refused the sync
	// attempt before any registry call was made.
	ErrAuthorizationDenied = errors.New("sync authorization denied")
	// ErrInvalidInput indicates invalid input for sync operations.
	ErrInvalidInput = errors.New("invalid sync input")
)
