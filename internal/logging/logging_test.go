package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupTextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("supervisor started", "host", "db.example.com", "pid", 4242)

	output := buf.String()
	if !strings.Contains(output, "supervisor started") {
		t.Errorf("message missing from output: %s", output)
	}
	if !strings.Contains(output, "host=db.example.com") {
		t.Errorf("attribute missing from output: %s", output)
	}
	if !strings.Contains(output, "pid=4242") {
		t.Errorf("attribute missing from output: %s", output)
	}
}

func TestSetupJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("tunnel registered", "local_port", 5432)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "tunnel registered" {
		t.Errorf("msg = %v, want %q", entry["msg"], "tunnel registered")
	}
	if entry["local_port"] != float64(5432) {
		t.Errorf("local_port = %v, want 5432", entry["local_port"])
	}
}

func TestSetupVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	if !Verbose {
		t.Error("Verbose flag should be true after Setup(true, ...)")
	}

	Debug("waiting for pidfile", "path", "/tmp/pids/db.pid")

	if !strings.Contains(buf.String(), "waiting for pidfile") {
		t.Errorf("debug message should appear in verbose mode, got: %s", buf.String())
	}
}

func TestSetupNonVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	if Verbose {
		t.Error("Verbose flag should be false after Setup(false, ...)")
	}

	Debug("waiting for pidfile")

	if buf.Len() != 0 {
		t.Errorf("debug message should be suppressed, got: %s", buf.String())
	}
}

func TestLevelFunctions(t *testing.T) {
	tests := []struct {
		name string
		log  func(msg string, args ...any)
		msg  string
	}{
		{"Debug", Debug, "read stale pidfile"},
		{"Info", Info, "tunnel stopped"},
		{"Warn", Warn, "pidfile not removed"},
		{"Error", Error, "could not signal supervisor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(true, false, &buf)

			tt.log(tt.msg, "local_port", 8080)

			if !strings.Contains(buf.String(), tt.msg) {
				t.Errorf("%s message missing from output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("component", "registry")
	if logger == nil {
		t.Fatal("With() returned nil")
	}

	logger.Info("duplicate port rejected")

	output := buf.String()
	if !strings.Contains(output, "duplicate port rejected") {
		t.Errorf("message missing from output: %s", output)
	}
	if !strings.Contains(output, "component=registry") {
		t.Errorf("bound attribute missing from output: %s", output)
	}
}

func TestSetupNilWriter(t *testing.T) {
	// A nil writer falls back to stderr rather than panicking.
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}
