package errors

import (
	"fmt"
	"testing"
)

func TestLPFError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *LPFError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestLPFError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Without cause
	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestLPFError_ExitCode(t *testing.T) {
	tests := []struct {
		code int
		name string
	}{
		{ExitSuccess, "success"},
		{ExitGeneralError, "general"},
		{ExitValidation, "validation"},
		{ExitDuplicatePort, "duplicate port"},
		{ExitPortInUse, "port in use"},
		{ExitCorruptState, "corrupt state"},
		{ExitLaunchFailed, "launch failed"},
		{ExitTunnelNotFound, "tunnel not found"},
		{ExitConfigError, "config error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "test")
			if got := err.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError("local port 0 out of range")

	if err.Code != ExitValidation {
		t.Errorf("Code = %d, want %d", err.Code, ExitValidation)
	}

	if err.Message != "local port 0 out of range" {
		t.Errorf("Message = %q, want %q", err.Message, "local port 0 out of range")
	}
}

func TestDuplicatePortError(t *testing.T) {
	err := DuplicatePortError(8080)

	if err.Code != ExitDuplicatePort {
		t.Errorf("Code = %d, want %d", err.Code, ExitDuplicatePort)
	}

	if err.Message != "local port 8080 is already registered" {
		t.Errorf("Message = %q, want %q", err.Message, "local port 8080 is already registered")
	}
}

func TestPortInUseError(t *testing.T) {
	err := PortInUseError(5432)

	if err.Code != ExitPortInUse {
		t.Errorf("Code = %d, want %d", err.Code, ExitPortInUse)
	}

	if err.Message != "local port 5432 is already in use" {
		t.Errorf("Message = %q, want %q", err.Message, "local port 5432 is already in use")
	}
}

func TestCorruptStateError(t *testing.T) {
	cause := fmt.Errorf("invalid character 'x'")
	err := CorruptStateError("/home/u/.config/lpf/tunnels.json", cause)

	if err.Code != ExitCorruptState {
		t.Errorf("Code = %d, want %d", err.Code, ExitCorruptState)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestLaunchError(t *testing.T) {
	cause := fmt.Errorf("executable file not found")
	err := LaunchError("supervisor failed to start", cause)

	if err.Code != ExitLaunchFailed {
		t.Errorf("Code = %d, want %d", err.Code, ExitLaunchFailed)
	}

	if err.Message != "supervisor failed to start" {
		t.Errorf("Message = %q, want %q", err.Message, "supervisor failed to start")
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestTunnelNotFoundError(t *testing.T) {
	err := TunnelNotFoundError(9000)

	if err.Code != ExitTunnelNotFound {
		t.Errorf("Code = %d, want %d", err.Code, ExitTunnelNotFound)
	}

	if err.Message != "no tunnel registered on local port 9000" {
		t.Errorf("Message = %q, want %q", err.Message, "no tunnel registered on local port 9000")
	}
}

func TestConfigError(t *testing.T) {
	cause := fmt.Errorf("invalid toml")
	err := ConfigError("failed to parse config", cause)

	if err.Code != ExitConfigError {
		t.Errorf("Code = %d, want %d", err.Code, ExitConfigError)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "LPFError",
			err:      DuplicatePortError(8080),
			wantCode: ExitDuplicatePort,
		},
		{
			name:     "wrapped LPFError",
			err:      fmt.Errorf("outer: %w", TunnelNotFoundError(8080)),
			wantCode: ExitTunnelNotFound,
		},
		{
			name:     "regular error",
			err:      fmt.Errorf("some error"),
			wantCode: ExitGeneralError,
		},
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestIs(t *testing.T) {
	target := fmt.Errorf("target error")
	wrapped := fmt.Errorf("wrapped: %w", target)

	if !Is(wrapped, target) {
		t.Error("Is() should return true for wrapped error")
	}

	other := fmt.Errorf("other error")
	if Is(wrapped, other) {
		t.Error("Is() should return false for different error")
	}
}

func TestAs(t *testing.T) {
	lpfErr := TunnelNotFoundError(4222)
	wrapped := fmt.Errorf("wrapped: %w", lpfErr)

	var target *LPFError
	if !As(wrapped, &target) {
		t.Error("As() should return true for wrapped LPFError")
	}

	if target.Code != ExitTunnelNotFound {
		t.Errorf("Code = %d, want %d", target.Code, ExitTunnelNotFound)
	}
}
