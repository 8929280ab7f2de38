package process

import "errors"

var (
	// ErrProcessNotFound indicates the monitored process doesn't exist.
	ErrProcessNotFound = errors.New("process not found")
	// ErrNotOwner indicates the caller does not own the targeted process.
	ErrNotOwner = errors.New("process not owned by caller")
	// ErrDuplicateDocket indicates the owner already monitors this docket.
	ErrDuplicateDocket = errors.New("docket already monitored")
	// ErrInvalidDocket indicates the docket number is malformed.
	ErrInvalidDocket = errors.New("invalid docket number")
	// ErrInvalidStatus indicates an unknown lifecycle status.
	ErrInvalidStatus = errors.New("invalid process status")
	// ErrInvalidInput indicates invalid input for process operations.
	ErrInvalidInput = errors.New("invalid process input")
)
