package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// appDir is the directory name under the XDG config root.
const appDir = "lpf"

// Paths holds the configured file locations
type Paths struct {
	ConfigDir    string // base directory, e.g. ~/.config/lpf
	StateFile    string // tunnels.json, the tunnel registry
	SettingsFile string // config.toml, user settings
	PidDir       string // pids/, one pidfile per tunnel
	LockFile     string // tunnels.lock, advisory lock for mutations
	JournalFile  string // events.db, event history
}

// DefaultPaths resolves the lpf directory under XDG_CONFIG_HOME,
// falling back to ~/.config.
func DefaultPaths() (*Paths, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return PathsIn(filepath.Join(base, appDir)), nil
}

// PathsIn returns the path layout rooted at dir.
func PathsIn(dir string) *Paths {
	return &Paths{
		ConfigDir:    dir,
		StateFile:    filepath.Join(dir, "tunnels.json"),
		SettingsFile: filepath.Join(dir, "config.toml"),
		PidDir:       filepath.Join(dir, "pids"),
		LockFile:     filepath.Join(dir, "tunnels.lock"),
		JournalFile:  filepath.Join(dir, "events.db"),
	}
}

// Ensure creates the config and pid directories.
func (p *Paths) Ensure() error {
	for _, dir := range []string{p.ConfigDir, p.PidDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Duration wraps time.Duration so TOML values like "5s" decode directly.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Settings is the user configuration from config.toml.
type Settings struct {
	Supervisor     string   `toml:"supervisor"`      // supervisor binary, e.g. "autossh"
	ExtraArgs      string   `toml:"extra_args"`      // extra supervisor arguments, shell-quoted
	PidfileTimeout Duration `toml:"pidfile_timeout"` // how long to wait for the supervisor pidfile
	VerifyCommand  bool     `toml:"verify_command"`  // verify the process cmdline before trusting a PID
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Supervisor:     "autossh",
		ExtraArgs:      "-o ServerAliveInterval=30 -o ServerAliveCountMax=3",
		PidfileTimeout: Duration{5 * time.Second},
		VerifyCommand:  true,
	}
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if s.Supervisor == "" {
		return fmt.Errorf("supervisor must not be empty")
	}
	if s.PidfileTimeout.Duration <= 0 {
		return fmt.Errorf("pidfile_timeout must be positive")
	}
	return nil
}

// LoadSettings reads settings from path, decoding over the defaults so
// absent keys keep their default values. A missing file yields the
// defaults without error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return settings, nil
	}

	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return settings, nil
}
