// Package store persists tunnel records as a JSON array on disk.
//
// The state file is the source of truth for the registry. Writes are
// atomic (temp file + rename) and mutating callers serialize through an
// advisory file lock, so a crashed or concurrent invocation never leaves
// a half-written registry behind.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"lpf/internal/errors"
	"lpf/internal/tunnel"
)

// Store reads and writes the tunnel registry file.
type Store struct {
	path     string
	lockPath string
	lockFile *os.File
}

// New returns a store over the given state and lock files.
func New(path, lockPath string) *Store {
	return &Store{path: path, lockPath: lockPath}
}

// Path returns the state file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads all records in insertion order. A missing file is an empty
// registry. An unreadable or unparsable file yields a corrupt-state
// error; the file itself is never touched.
func (s *Store) Load() ([]tunnel.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []tunnel.Record{}, nil
		}
		return nil, errors.CorruptStateError(s.path, err)
	}

	var records []tunnel.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.CorruptStateError(s.path, err)
	}
	if records == nil {
		records = []tunnel.Record{}
	}
	return records, nil
}

// Save writes records atomically: marshal, write a temp file next to
// the state file, then rename it into place.
func (s *Store) Save(records []tunnel.Record) error {
	if records == nil {
		records = []tunnel.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tunnel records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Lock acquires an exclusive advisory lock, blocking until it is
// available. Mutations hold it across the whole load-modify-save
// sequence so concurrent invocations cannot interleave.
func (s *Store) Lock() error {
	if s.lockFile != nil {
		return fmt.Errorf("lock already held")
	}
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	s.lockFile = f
	return nil
}

// Unlock releases the advisory lock. Unlocking an unlocked store is a
// no-op.
func (s *Store) Unlock() error {
	if s.lockFile == nil {
		return nil
	}
	if err := syscall.Flock(int(s.lockFile.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	err := s.lockFile.Close()
	s.lockFile = nil
	return err
}
