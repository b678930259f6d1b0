package errors

import "fmt"

// ErrorCode represents a tagwell error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// TagwellError represents a structured error with code, status, and details.
// The capture pipeline itself has no error states (empty candidates,
// missing markers, and duplicates are boolean non-results); these errors
// cover the surfaces around it: bad CLI/MCP input and export failures.
type TagwellError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TagwellError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TagwellError {
	return &TagwellError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing archive or record.
func NewNotFound(what string) *TagwellError {
	return &TagwellError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", what),
		Details: map[string]any{"target": what},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TagwellError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TagwellError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TagwellError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TagwellError); ok {
		return tErr.Code == code
	}
	return false
}
