// Package tui provides terminal user interface components for lpf
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lpf/internal/registry"
	"lpf/internal/tunnel"
)

// tunnelItem implements list.Item for tunnel display
type tunnelItem struct {
	entry registry.Entry
}

func (i tunnelItem) Title() string {
	return i.entry.Record.ID()
}

func (i tunnelItem) Description() string {
	statusIcon := "○"
	if i.entry.Status == tunnel.StatusRunning {
		statusIcon = "●"
	}

	pid := "-"
	if p := i.entry.Record.PIDOrZero(); p != 0 {
		pid = strconv.Itoa(p)
	}

	return fmt.Sprintf("%s %s | localhost:%d -> %s:%d | pid %s",
		statusIcon,
		i.entry.Status,
		i.entry.Record.LocalPort,
		i.entry.Record.Host,
		i.entry.Record.RemotePort,
		pid,
	)
}

func (i tunnelItem) FilterValue() string {
	return i.entry.Record.ID()
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the tunnel picker
type Model struct {
	list     list.Model
	selected *registry.Entry
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new tunnel picker
func NewPicker(entries []registry.Entry) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = tunnelItem{entry: e}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "lpf - Select Tunnel"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(tunnelItem); ok {
				entry := item.entry
				m.selected = &entry
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Stop  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Selected returns the chosen tunnel, or nil when the picker was
// cancelled.
func (m Model) Selected() *registry.Entry {
	return m.selected
}

// Pick runs the interactive tunnel picker. A nil entry without an error
// means the user cancelled or nothing is registered.
func Pick(entries []registry.Entry) (*registry.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	m := NewPicker(entries)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(Model).Selected(), nil
}
