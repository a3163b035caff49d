package cmd

import (
	"fmt"
	"strconv"

	"lpf/internal/app"
	"lpf/internal/errors"
	"lpf/internal/tunnel"
)

// getApp returns the shared application instance.
// This is a helper to reduce repetition in commands.
func getApp() (*app.App, error) {
	return app.Default()
}

// parsePortArg parses a numeric port argument.
func parsePortArg(name, raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ValidationError(fmt.Sprintf("%s must be a number, got %q", name, raw))
	}
	return port, nil
}

// formatStatus renders a tunnel status with its glyph.
func formatStatus(status tunnel.Status) string {
	switch status {
	case tunnel.StatusRunning:
		return "● running"
	case tunnel.StatusStopped:
		return "○ stopped"
	default:
		return string(status)
	}
}

// formatForward renders the forwarding path of a record.
func formatForward(rec tunnel.Record) string {
	return fmt.Sprintf("localhost:%d -> %s:%d", rec.LocalPort, rec.Host, rec.RemotePort)
}

// formatPID renders a record's PID, or a dash when none is recorded.
func formatPID(rec tunnel.Record) string {
	if rec.PID == nil {
		return "-"
	}
	return strconv.Itoa(*rec.PID)
}
