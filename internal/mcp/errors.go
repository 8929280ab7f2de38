package mcp

import (
	"errors"
	"fmt"

	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/domain/syncer"
	"github.com/andeslex/casewatch/internal/registry"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil
// so the caller can wrap them generically.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, process.ErrProcessNotFound):
		return &APIError{Code: "PROCESS_NOT_FOUND", Message: "process not found", RecoveryHint: "Check the process ID with list_cases"}
	case errors.Is(err, process.ErrNotOwner):
		return &APIError{Code: "NOT_OWNER", Message: "process belongs to another lawyer"}
	case errors.Is(err, process.ErrDuplicateDocket):
		return &APIError{Code: "DUPLICATE_DOCKET", Message: "docket is already monitored", RecoveryHint: "Use sync_case on the existing monitor"}
	case errors.Is(err, process.ErrInvalidDocket):
		return &APIError{Code: "INVALID_DOCKET", Message: "docket must be 23 digits", RecoveryHint: "Dashes and spaces are allowed, any other character is not"}
	case errors.Is(err, process.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: "status must be active, terminated or suspended"}
	case errors.Is(err, process.ErrInvalidInput), errors.Is(err, syncer.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "missing or invalid input"}
	case errors.Is(err, syncer.ErrAuthorizationDenied):
		return &APIError{Code: "AUTHORIZATION_DENIED", Message: "sync not authorized", RecoveryHint: "Check the account's credit balance"}
	}
	if fetchErr, ok := registry.AsFetchError(err); ok {
		if fetchErr.Temporary() {
			return &APIError{Code: "REGISTRY_UNAVAILABLE", Message: "registry is temporarily unavailable", RecoveryHint: "Retry later"}
		}
		return &APIError{Code: "REGISTRY_ERROR", Message: "registry request failed"}
	}
	return nil
}

// toolError folds a domain error into an MCP tool error, keeping known codes
// stable for clients.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
