// Package errors provides the standardized error taxonomy of the service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Engine failures are the only errors the search core surfaces upward.
	ErrCodeSearchBackendUnavailable ErrorCode = "SEARCH_BACKEND_UNAVAILABLE"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout            ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound            ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeInvalidSearchRequest ErrorCode = "INVALID_SEARCH_REQUEST"

	ErrCodeTagNotFound    ErrorCode = "TAG_NOT_FOUND"
	ErrCodeTagStoreFailed ErrorCode = "TAG_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewBackendUnavailableError creates a retryable engine-transport error. The
// API layer maps it to a 503 rather than a generic failure.
func NewBackendUnavailableError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchBackendUnavailable,
		Message:   "Search backend unavailable",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable query-execution error.
func NewSearchQueryFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable timeout error.
func NewSearchTimeoutError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Search timed out",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSearchRequestError creates a non-retryable validation error.
func NewInvalidSearchRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSearchRequest,
		Message:   "Invalid search request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTagNotFoundError creates a non-retryable tag lookup error.
func NewTagNotFoundError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTagNotFound,
		Message:   "Tag not found",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
