// Package registry implements the tunnel lifecycle: adding, listing,
// and stopping tunnels against the persistent store.
package registry

import (
	"context"
	"fmt"

	"lpf/internal/errors"
	"lpf/internal/journal"
	"lpf/internal/logging"
	"lpf/internal/port"
	"lpf/internal/proc"
	"lpf/internal/store"
	"lpf/internal/tunnel"
)

// Launcher starts a supervisor for a record and cleans up its runtime
// files.
type Launcher interface {
	Launch(ctx context.Context, rec tunnel.Record) (int, error)
	Cleanup(rec tunnel.Record) error
}

// LivenessChecker classifies a record as running or stopped.
type LivenessChecker interface {
	Alive(rec tunnel.Record) bool
}

// EventSink receives journal events. Recording is best-effort.
type EventSink interface {
	Record(ctx context.Context, ev journal.Event) error
}

// Entry is a record with its liveness classification.
type Entry struct {
	Record tunnel.Record
	Status tunnel.Status
}

// AddResult reports the outcome of Add. LaunchErr is set when the
// definition persisted but the supervisor could not be started.
type AddResult struct {
	Record    tunnel.Record
	LaunchErr error
}

// StopResult reports the outcome of stopping one tunnel. Stopped is
// true when a live supervisor was signalled.
type StopResult struct {
	Record  tunnel.Record
	Stopped bool
}

// Registry orchestrates tunnel operations over the store.
type Registry struct {
	store     *store.Store
	launcher  Launcher
	checker   LivenessChecker
	journal   EventSink
	probe     func(int) bool
	terminate func(int) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithJournal records registry actions to sink.
func WithJournal(sink EventSink) Option {
	return func(r *Registry) {
		r.journal = sink
	}
}

// WithPortProbe overrides the local port-in-use probe.
func WithPortProbe(probe func(int) bool) Option {
	return func(r *Registry) {
		r.probe = probe
	}
}

// WithTerminator overrides how supervisor processes are signalled.
func WithTerminator(term func(int) error) Option {
	return func(r *Registry) {
		r.terminate = term
	}
}

// New builds a registry. launch may be nil for read-only use; check may
// be nil to treat every record as stopped.
func New(st *store.Store, launch Launcher, check LivenessChecker, opts ...Option) *Registry {
	r := &Registry{
		store:     st,
		launcher:  launch,
		checker:   check,
		probe:     port.InUse,
		terminate: proc.Terminate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add validates, persists, and starts a new tunnel. The definition is
// durable before any launch attempt: when the supervisor fails to
// start, the record stays registered without a PID and the failure is
// reported in AddResult.LaunchErr rather than as an operation error.
func (r *Registry) Add(ctx context.Context, host string, localPort, remotePort int) (AddResult, error) {
	rec, err := tunnel.NewRecord(host, localPort, remotePort)
	if err != nil {
		return AddResult{}, errors.ValidationError(err.Error())
	}

	if err := r.store.Lock(); err != nil {
		return AddResult{}, fmt.Errorf("failed to lock registry: %w", err)
	}
	defer r.store.Unlock()

	records, err := r.store.Load()
	if err != nil {
		return AddResult{}, err
	}

	// The duplicate check comes before the bind probe so that a port
	// occupied by its own registered tunnel reports as a duplicate.
	for _, existing := range records {
		if existing.LocalPort == rec.LocalPort {
			return AddResult{}, errors.DuplicatePortError(rec.LocalPort)
		}
	}

	if r.probe != nil && r.probe(rec.LocalPort) {
		return AddResult{}, errors.PortInUseError(rec.LocalPort)
	}

	records = append(records, rec)
	if err := r.store.Save(records); err != nil {
		return AddResult{}, fmt.Errorf("failed to persist tunnel %s: %w", rec.ID(), err)
	}
	r.logEvent(ctx, journal.ForRecord(journal.EventAdd, rec, 0, ""))

	pid, launchErr := r.launch(ctx, rec)
	if launchErr != nil {
		r.logEvent(ctx, journal.ForRecord(journal.EventLaunchFailed, rec, 0, launchErr.Error()))
		return AddResult{
			Record: rec,
			LaunchErr: errors.LaunchError(
				fmt.Sprintf("tunnel %s saved but its supervisor failed to start", rec.ID()),
				launchErr,
			),
		}, nil
	}

	rec.PID = &pid
	records[len(records)-1] = rec
	if err := r.store.Save(records); err != nil {
		return AddResult{Record: rec}, fmt.Errorf("failed to record supervisor pid for %s: %w", rec.ID(), err)
	}
	r.logEvent(ctx, journal.ForRecord(journal.EventLaunch, rec, pid, ""))

	return AddResult{Record: rec}, nil
}

func (r *Registry) launch(ctx context.Context, rec tunnel.Record) (int, error) {
	if r.launcher == nil {
		return 0, fmt.Errorf("no supervisor launcher configured")
	}
	return r.launcher.Launch(ctx, rec)
}

// List returns every tunnel in insertion order with its live status.
// It never mutates the store.
func (r *Registry) List() ([]Entry, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		status := tunnel.StatusStopped
		if r.checker != nil && r.checker.Alive(rec) {
			status = tunnel.StatusRunning
		}
		entries = append(entries, Entry{Record: rec, Status: status})
	}
	return entries, nil
}

// Stop terminates the tunnel on localPort and removes it from the
// registry. A record whose supervisor is already dead still gets
// removed and its runtime files cleaned up.
func (r *Registry) Stop(ctx context.Context, localPort int) (StopResult, error) {
	if err := r.store.Lock(); err != nil {
		return StopResult{}, fmt.Errorf("failed to lock registry: %w", err)
	}
	defer r.store.Unlock()

	records, err := r.store.Load()
	if err != nil {
		return StopResult{}, err
	}

	idx := -1
	for i, rec := range records {
		if rec.LocalPort == localPort {
			idx = i
			break
		}
	}
	if idx == -1 {
		return StopResult{}, errors.TunnelNotFoundError(localPort)
	}

	res := r.stopRecord(ctx, records[idx])

	records = append(records[:idx], records[idx+1:]...)
	if err := r.store.Save(records); err != nil {
		return res, fmt.Errorf("failed to update registry: %w", err)
	}
	return res, nil
}

// StopAll stops every registered tunnel and empties the registry.
func (r *Registry) StopAll(ctx context.Context) ([]StopResult, error) {
	if err := r.store.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock registry: %w", err)
	}
	defer r.store.Unlock()

	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	results := make([]StopResult, 0, len(records))
	for _, rec := range records {
		results = append(results, r.stopRecord(ctx, rec))
	}

	if err := r.store.Save(nil); err != nil {
		return results, fmt.Errorf("failed to update registry: %w", err)
	}
	return results, nil
}

// stopRecord signals the supervisor and removes runtime files. The
// caller persists the record's removal.
func (r *Registry) stopRecord(ctx context.Context, rec tunnel.Record) StopResult {
	res := StopResult{Record: rec}

	if rec.PID != nil && r.checker != nil && r.checker.Alive(rec) {
		if err := r.terminate(*rec.PID); err != nil {
			logging.Warn("could not signal supervisor", "id", rec.ID(), "pid", *rec.PID, "error", err)
		} else {
			res.Stopped = true
		}
	}

	if r.launcher != nil {
		if err := r.launcher.Cleanup(rec); err != nil {
			logging.Warn("could not remove runtime files", "id", rec.ID(), "error", err)
		}
	}

	r.logEvent(ctx, journal.ForRecord(journal.EventStop, rec, rec.PIDOrZero(), ""))
	return res
}

// logEvent records to the journal when one is configured. Failures are
// logged, never fatal.
func (r *Registry) logEvent(ctx context.Context, ev journal.Event) {
	if r.journal == nil {
		return
	}
	if err := r.journal.Record(ctx, ev); err != nil {
		logging.Debug("journal write failed", "type", string(ev.Type), "error", err)
	}
}
