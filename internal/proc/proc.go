// Package proc answers liveness questions about supervisor processes.
package proc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"

	"lpf/internal/logging"
	"lpf/internal/tunnel"
)

// Alive reports whether a process with the given PID exists. Zero and
// negative PIDs are never alive, and failures to query the process
// table report false rather than an error.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return false
	}
	return exists
}

// Terminate sends SIGTERM to the process, escalating to SIGKILL when
// the signal cannot be delivered. A process that is already gone is not
// an error.
func Terminate(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid %d", pid)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			return nil
		}
		if killErr := proc.Signal(syscall.SIGKILL); killErr != nil {
			return fmt.Errorf("failed to terminate process %d: %w", pid, killErr)
		}
	}
	return nil
}

// Checker classifies tunnel records as running or stopped.
type Checker struct {
	supervisor    string
	verifyCommand bool
}

// NewChecker returns a checker expecting the given supervisor binary.
// With verifyCommand set, a recorded PID only counts as this tunnel's
// supervisor if its command line matches, which guards against the PID
// being reused by an unrelated process after a reboot.
func NewChecker(supervisor string, verifyCommand bool) *Checker {
	return &Checker{supervisor: supervisor, verifyCommand: verifyCommand}
}

// Alive reports whether the record's supervisor process is running.
func (c *Checker) Alive(rec tunnel.Record) bool {
	if rec.PID == nil {
		return false
	}
	pid := *rec.PID
	if !Alive(pid) {
		return false
	}
	if !c.verifyCommand {
		return true
	}
	return c.supervises(pid, rec)
}

// supervises checks the process command line for the supervisor name,
// the record's forward spec, and its host.
func (c *Checker) supervises(pid int, rec tunnel.Record) bool {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	args, err := p.CmdlineSlice()
	if err != nil || len(args) == 0 {
		logging.Debug("could not read process cmdline", "pid", pid, "error", err)
		return false
	}

	if !strings.Contains(filepath.Base(args[0]), c.supervisor) {
		return false
	}

	spec := rec.ForwardSpec()
	var haveSpec, haveHost bool
	for _, arg := range args[1:] {
		switch arg {
		case spec:
			haveSpec = true
		case rec.Host:
			haveHost = true
		}
	}
	return haveSpec && haveHost
}
