package registry

import (
	"errors"
	"fmt"
)

// FetchError reports a failed registry call: transport failure, non-2xx
// status, or a malformed payload. "Case not found" is not a FetchError; it is
// a successful empty snapshot.
type FetchError struct {
	Docket string
	Status int // HTTP status when the provider answered, 0 otherwise
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("registry fetch for %s: status %d: %v", e.Docket, e.Status, e.Err)
	}
	return fmt.Sprintf("registry fetch for %s: %v", e.Docket, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the fetch could reasonably succeed.
// Server-side errors, throttling and transport failures are temporary; client
// errors and malformed payloads are not.
func (e *FetchError) Temporary() bool {
	if e.Status == 0 {
		return !errors.Is(e.Err, errMalformedPayload)
	}
	return e.Status >= 500 || e.Status == 429
}

var errMalformedPayload = errors.New("malformed payload")

// AsFetchError unwraps a FetchError from err, if present.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	ok := errors.As(err, &fe)
	return fe, ok
}
