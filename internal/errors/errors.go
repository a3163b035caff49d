package errors

import (
	"errors"
	"fmt"
)

// Exit codes for lpf
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitValidation     = 2
	ExitDuplicatePort  = 3
	ExitPortInUse      = 4
	ExitCorruptState   = 5
	ExitLaunchFailed   = 6
	ExitTunnelNotFound = 7
	ExitConfigError    = 8
)

// LPFError is the base error type for lpf
type LPFError struct {
	Code    int
	Message string
	Cause   error
}

func (e *LPFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LPFError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *LPFError) ExitCode() int {
	return e.Code
}

// New creates a new LPFError
func New(code int, message string) *LPFError {
	return &LPFError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an LPFError
func Wrap(code int, message string, cause error) *LPFError {
	return &LPFError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ValidationError returns an error for input validation failures
func ValidationError(message string) *LPFError {
	return New(ExitValidation, message)
}

// DuplicatePortError returns an error for a local port that already has a tunnel
func DuplicatePortError(port int) *LPFError {
	return New(ExitDuplicatePort, fmt.Sprintf("local port %d is already registered", port))
}

// PortInUseError returns an error for a local port bound by another process
func PortInUseError(port int) *LPFError {
	return New(ExitPortInUse, fmt.Sprintf("local port %d is already in use", port))
}

// CorruptStateError returns an error for an unreadable or unparsable state file
func CorruptStateError(path string, cause error) *LPFError {
	return Wrap(ExitCorruptState, fmt.Sprintf("tunnel state file %s is corrupt", path), cause)
}

// LaunchError returns an error for supervisor launch failures
func LaunchError(message string, cause error) *LPFError {
	return Wrap(ExitLaunchFailed, message, cause)
}

// TunnelNotFoundError returns an error for a local port with no registered tunnel
func TunnelNotFoundError(port int) *LPFError {
	return New(ExitTunnelNotFound, fmt.Sprintf("no tunnel registered on local port %d", port))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *LPFError {
	return Wrap(ExitConfigError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var lpfErr *LPFError
	if errors.As(err, &lpfErr) {
		return lpfErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
