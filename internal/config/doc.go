// Package config provides path resolution and user settings for lpf.
//
// # File Layout
//
// All state lives under a single directory, resolved from XDG_CONFIG_HOME
// (falling back to ~/.config):
//
//	~/.config/lpf/tunnels.json  tunnel registry
//	~/.config/lpf/config.toml   user settings (optional)
//	~/.config/lpf/pids/         supervisor pidfiles
//	~/.config/lpf/tunnels.lock  advisory lock for registry mutations
//	~/.config/lpf/events.db     event history
//
// # Settings
//
// Settings are decoded from config.toml over built-in defaults, so a
// partial file only overrides the keys it names:
//
//	supervisor = "autossh"
//	extra_args = "-o ServerAliveInterval=30 -o ServerAliveCountMax=3"
//	pidfile_timeout = "5s"
//	verify_command = true
//
// A missing config.toml is not an error; the defaults apply.
package config
