// Package tui provides terminal user interface components for lpf.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces: a tunnel picker for stop and a creation wizard for add.
//
// # Tunnel Picker
//
// The picker displays registered tunnels with their live status and lets
// the user choose one:
//
//	entry, err := tui.Pick(entries)
//	if entry != nil {
//	    // Stop entry.Record
//	}
//
// A nil entry without an error means the user cancelled.
//
// # Add Wizard
//
// The wizard collects a tunnel definition step by step (host, local port,
// remote port) when add runs without arguments:
//
//	opts, err := tui.RunAddWizard()
//	if opts != nil {
//	    // Register opts.Host / opts.LocalPort / opts.RemotePort
//	}
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
