// Package errors provides typed errors with exit codes for lpf.
//
// # Error Types
//
// LPFError is the base error type that wraps an error with an exit code:
//
//	type LPFError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess        = 0  // Success
//	ExitGeneralError   = 1  // General/unknown errors
//	ExitValidation     = 2  // Invalid host or port input
//	ExitDuplicatePort  = 3  // Local port already registered
//	ExitPortInUse      = 4  // Local port bound by another process
//	ExitCorruptState   = 5  // State file unreadable or unparsable
//	ExitLaunchFailed   = 6  // Supervisor missing or failed to start
//	ExitTunnelNotFound = 7  // No tunnel registered on the port
//	ExitConfigError    = 8  // Configuration error
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.DuplicatePortError(8080)
//	errors.CorruptStateError(path, err)
//	errors.LaunchError("supervisor failed to start", err)
//	errors.TunnelNotFoundError(8080)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
