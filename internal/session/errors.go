package session

import "fmt"

// Error represents a session operation failure
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Reply converts the error into the text shown to the user
func (e *Error) Reply() Reply {
	return Reply{
		Text: "❌ " + e.Message,
		Kind: e.Code,
	}
}

// Error codes for session operations
const (
	ErrConnectionFailed = "CONNECTION_FAILED"
	ErrNotConnected     = "NOT_CONNECTED"
	ErrEmptyLocation    = "EMPTY_LOCATION"
	ErrToolNotFound     = "TOOL_NOT_FOUND"
	ErrRemote           = "REMOTE_ERROR"
	ErrNoContent        = "NO_CONTENT"
	ErrCallFailed       = "CALL_FAILED"
)

// NewConnectionError creates a connection failure error
func NewConnectionError(cause error) *Error {
	return &Error{
		Code:    ErrConnectionFailed,
		Message: fmt.Sprintf("Connection failed: %v", cause),
		Cause:   cause,
	}
}

// NewNotConnectedError creates an error for calls made before connecting
func NewNotConnectedError() *Error {
	return &Error{
		Code:    ErrNotConnected,
		Message: "Not connected to server. Click Connect first.",
	}
}

// NewEmptyLocationError creates an error for blank location input
func NewEmptyLocationError() *Error {
	return &Error{
		Code:    ErrEmptyLocation,
		Message: "Please enter a location (e.g., 'Berlin, Germany')",
	}
}

// NewToolNotFoundError creates an error for a server without a weather tool
func NewToolNotFoundError(cause error) *Error {
	return &Error{
		Code:    ErrToolNotFound,
		Message: "Weather tool not found on server",
		Cause:   cause,
	}
}

// NewRemoteError creates an error for a failure reported inside the tool result
func NewRemoteError(message string) *Error {
	return &Error{
		Code:    ErrRemote,
		Message: fmt.Sprintf("Error: %s", message),
	}
}

// NewNoContentError creates an error for a result without text
func NewNoContentError(cause error) *Error {
	return &Error{
		Code:    ErrNoContent,
		Message: "No content received from server",
		Cause:   cause,
	}
}

// NewCallError creates an error for an unexpected failure during a call
func NewCallError(cause error) *Error {
	return &Error{
		Code:    ErrCallFailed,
		Message: fmt.Sprintf("Failed to get weather: %v", cause),
		Cause:   cause,
	}
}
