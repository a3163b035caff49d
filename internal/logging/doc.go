// Package logging provides logging utilities for lpf.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("starting supervisor", "host", host, "local_port", port)
//	logging.Warn("pidfile not removed", "path", path, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Tunnel %s is not running", id)
//	logging.UserSuccess("Tunnel %s started (pid %d)", id, pid)
//	logging.UserWarning("Port %d is already in use", port)
//	logging.UserError("Failed to stop tunnel: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
