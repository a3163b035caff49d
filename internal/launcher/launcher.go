// Package launcher starts the external tunnel supervisor.
//
// The supervisor (autossh by default) is run in its -f mode, so it
// daemonizes itself and survives this process. Its real PID is
// recovered from the pidfile it writes, pointed at a per-tunnel path
// via AUTOSSH_PIDFILE.
package launcher

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/kballard/go-shellquote"

	"lpf/internal/config"
	"lpf/internal/logging"
	"lpf/internal/system"
	"lpf/internal/tunnel"
)

// pollInterval is how often the pidfile is re-read while waiting for
// the supervisor to daemonize.
const pollInterval = 100 * time.Millisecond

// Launcher spawns the supervisor for a tunnel record and resolves the
// PID of the daemonized process.
type Launcher struct {
	supervisor string
	extraArgs  []string
	pidDir     string
	wait       time.Duration
	exec       system.CommandExecutor
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithExecutor overrides the command executor, for tests.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(l *Launcher) {
		l.exec = exec
	}
}

// New builds a launcher from settings. The extra_args string is parsed
// with shell quoting rules.
func New(settings config.Settings, pidDir string, opts ...Option) (*Launcher, error) {
	extra, err := shellquote.Split(settings.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extra_args %q: %w", settings.ExtraArgs, err)
	}

	l := &Launcher{
		supervisor: settings.Supervisor,
		extraArgs:  extra,
		pidDir:     pidDir,
		wait:       settings.PidfileTimeout.Duration,
		exec:       system.DefaultExecutor(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Args returns the supervisor arguments for rec: monitoring disabled
// (-M 0), no remote command (-N), the configured extra arguments, then
// the local forward and destination.
func (l *Launcher) Args(rec tunnel.Record) []string {
	args := []string{"-f", "-M", "0", "-N"}
	args = append(args, l.extraArgs...)
	args = append(args, "-L", rec.ForwardSpec(), rec.Host)
	return args
}

// Command returns the full launch command as a shell-quoted string,
// for logs and the event journal.
func (l *Launcher) Command(rec tunnel.Record) string {
	return shellquote.Join(append([]string{l.supervisor}, l.Args(rec)...)...)
}

// PidFile returns the pidfile path for rec inside the pid directory.
func (l *Launcher) PidFile(rec tunnel.Record) (string, error) {
	path, err := securejoin.SecureJoin(l.pidDir, rec.FileStem()+".pid")
	if err != nil {
		return "", fmt.Errorf("invalid pidfile name for %s: %w", rec.ID(), err)
	}
	return path, nil
}

// Launch starts the supervisor for rec and returns the PID of the
// daemonized process.
func (l *Launcher) Launch(ctx context.Context, rec tunnel.Record) (int, error) {
	binary, err := l.exec.LookPath(l.supervisor)
	if err != nil {
		return 0, fmt.Errorf("supervisor %q not found in PATH: %w", l.supervisor, err)
	}

	pidPath, err := l.PidFile(rec)
	if err != nil {
		return 0, err
	}
	// Drop any stale pidfile so the poll below cannot pick up a
	// previous supervisor's PID.
	if err := os.Remove(pidPath); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("failed to remove stale pidfile %s: %w", pidPath, err)
	}

	env := []string{
		"AUTOSSH_PIDFILE=" + pidPath,
		"AUTOSSH_GATETIME=0",
	}

	logging.Debug("starting supervisor", "command", l.Command(rec), "pidfile", pidPath)

	out, err := l.exec.Run(ctx, env, binary, l.Args(rec)...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return 0, fmt.Errorf("supervisor exited: %s: %w", msg, err)
		}
		return 0, fmt.Errorf("supervisor exited: %w", err)
	}

	pid, err := l.waitForPid(ctx, pidPath)
	if err != nil {
		return 0, err
	}

	logging.Debug("supervisor started", "id", rec.ID(), "pid", pid)
	return pid, nil
}

// waitForPid polls the pidfile until it contains a parseable PID.
func (l *Launcher) waitForPid(ctx context.Context, pidPath string) (int, error) {
	deadline := time.Now().Add(l.wait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if pid, ok := readPidFile(pidPath); ok {
			return pid, nil
		}
		if time.Now().After(deadline) {
			return 0, fmt.Errorf("supervisor did not write %s within %s", pidPath, l.wait)
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

// readPidFile reads a PID, tolerating a file that is still being
// written.
func readPidFile(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, false
	}
	pid, err := strconv.Atoi(text)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Cleanup removes the pidfile for rec; a missing file is fine.
func (l *Launcher) Cleanup(rec tunnel.Record) error {
	pidPath, err := l.PidFile(rec)
	if err != nil {
		return err
	}
	if err := os.Remove(pidPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pidfile %s: %w", pidPath, err)
	}
	return nil
}
