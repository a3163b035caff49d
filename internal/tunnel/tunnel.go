// Package tunnel defines the persisted tunnel record model.
package tunnel

import (
	"fmt"
	"regexp"
	"strings"
)

// Status reports whether a tunnel's supervisor is alive.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// Record is one tunnel definition. Records serialize to the JSON state
// file; field names are part of the on-disk format.
type Record struct {
	Host       string `json:"host"`
	LocalPort  int    `json:"local_port"`
	RemotePort int    `json:"remote_port"`
	PID        *int   `json:"pid,omitempty"`
}

var fileStemUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// NewRecord builds a validated record. A zero remotePort defaults to
// localPort.
func NewRecord(host string, localPort, remotePort int) (Record, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return Record{}, fmt.Errorf("host must not be empty")
	}
	// A leading dash would be parsed as a flag by the supervisor.
	if strings.HasPrefix(host, "-") {
		return Record{}, fmt.Errorf("invalid host %q: must not start with '-'", host)
	}
	if err := ValidatePort("local port", localPort); err != nil {
		return Record{}, err
	}
	if remotePort == 0 {
		remotePort = localPort
	}
	if err := ValidatePort("remote port", remotePort); err != nil {
		return Record{}, err
	}

	return Record{
		Host:       host,
		LocalPort:  localPort,
		RemotePort: remotePort,
	}, nil
}

// ValidatePort checks that a TCP port is in the valid range.
func ValidatePort(label string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s %d out of range (1-65535)", label, port)
	}
	return nil
}

// ID returns the display identity of the record: host:local_port.
func (r Record) ID() string {
	return fmt.Sprintf("%s:%d", r.Host, r.LocalPort)
}

// ForwardSpec returns the local forward argument passed to the
// supervisor: local_port:localhost:remote_port.
func (r Record) ForwardSpec() string {
	return fmt.Sprintf("%d:localhost:%d", r.LocalPort, r.RemotePort)
}

// FileStem returns a filesystem-safe name derived from ID, used for
// per-tunnel runtime files such as pidfiles.
func (r Record) FileStem() string {
	return fileStemUnsafe.ReplaceAllString(r.ID(), "_")
}

// PIDOrZero returns the recorded supervisor PID, or 0 when unset.
func (r Record) PIDOrZero() int {
	if r.PID == nil {
		return 0
	}
	return *r.PID
}
