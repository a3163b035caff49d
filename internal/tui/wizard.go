package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lpf/internal/tunnel"
)

// wizardStep identifies the current step.
type wizardStep int

const (
	stepHost wizardStep = iota
	stepLocalPort
	stepRemotePort
	stepConfirm
)

// AddOptions holds the values collected by the add wizard.
type AddOptions struct {
	Host       string
	LocalPort  int
	RemotePort int
}

// wizardModel drives the multi-step tunnel creation wizard.
type wizardModel struct {
	step wizardStep

	hostInput   textinput.Model
	localInput  textinput.Model
	remoteInput textinput.Model

	// Collected values
	host       string
	localPort  int
	remotePort int
}

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func newWizardModel() wizardModel {
	hi := textinput.New()
	hi.Placeholder = "user@gateway.example.com"
	hi.Focus()
	hi.CharLimit = 256
	hi.Width = 50

	li := textinput.New()
	li.Placeholder = "8080"
	li.CharLimit = 5
	li.Width = 10

	ri := textinput.New()
	ri.Placeholder = "same as local"
	ri.CharLimit = 5
	ri.Width = 15

	return wizardModel{
		step:        stepHost,
		hostInput:   hi,
		localInput:  li,
		remoteInput: ri,
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, addOptions, cmd).
// done=true with non-nil opts means the wizard completed successfully.
// done=true with nil opts means the wizard was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *AddOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	switch w.step {
	case stepHost:
		return w.updateHost(msg)
	case stepLocalPort:
		return w.updateLocalPort(msg)
	case stepRemotePort:
		return w.updateRemotePort(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *AddOptions, tea.Cmd) {
	switch w.step {
	case stepHost:
		// Esc at first step cancels the wizard
		return true, nil, nil
	case stepLocalPort:
		w.step = stepHost
		w.localInput.Blur()
		w.hostInput.Focus()
		return false, nil, textinput.Blink
	case stepRemotePort:
		w.step = stepLocalPort
		w.remoteInput.Blur()
		w.localInput.Focus()
		return false, nil, textinput.Blink
	case stepConfirm:
		w.step = stepRemotePort
		w.remoteInput.Focus()
		return false, nil, textinput.Blink
	}
	return false, nil, nil
}

func (w *wizardModel) updateHost(msg tea.Msg) (bool, *AddOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		host := strings.TrimSpace(w.hostInput.Value())
		if host == "" || strings.HasPrefix(host, "-") {
			return false, nil, nil
		}
		w.host = host
		w.step = stepLocalPort
		w.hostInput.Blur()
		w.localInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	w.hostInput, cmd = w.hostInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateLocalPort(msg tea.Msg) (bool, *AddOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		port, ok := parsePort(w.localInput.Value())
		if !ok {
			return false, nil, nil
		}
		w.localPort = port
		w.step = stepRemotePort
		w.localInput.Blur()
		w.remoteInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	w.localInput, cmd = w.localInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateRemotePort(msg tea.Msg) (bool, *AddOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		raw := strings.TrimSpace(w.remoteInput.Value())
		if raw == "" {
			w.remotePort = w.localPort
		} else {
			port, ok := parsePort(raw)
			if !ok {
				return false, nil, nil
			}
			w.remotePort = port
		}
		w.step = stepConfirm
		w.remoteInput.Blur()
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.remoteInput, cmd = w.remoteInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *AddOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, &AddOptions{
				Host:       w.host,
				LocalPort:  w.localPort,
				RemotePort: w.remotePort,
			}, nil
		case "n":
			// Restart wizard
			w.step = stepHost
			w.hostInput.SetValue("")
			w.localInput.SetValue("")
			w.remoteInput.SetValue("")
			w.hostInput.Focus()
			w.host = ""
			w.localPort = 0
			w.remotePort = 0
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Add Tunnel"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepHost:
		b.WriteString(wizardLabelStyle.Render("SSH host:"))
		b.WriteString("\n")
		b.WriteString(w.hostInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Enter the SSH destination, e.g. user@hpc.example.edu."))
	case stepLocalPort:
		b.WriteString(wizardLabelStyle.Render("Local port:"))
		b.WriteString("\n")
		b.WriteString(w.localInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("The port to listen on locally (1-65535)."))
	case stepRemotePort:
		b.WriteString(wizardLabelStyle.Render("Remote port:"))
		b.WriteString("\n")
		b.WriteString(w.remoteInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("The port on the remote host. Leave empty to reuse the local port."))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Host:    %s\n", wizardValueStyle.Render(w.host)))
		forward := fmt.Sprintf("localhost:%d -> %s:%d", w.localPort, w.host, w.remotePort)
		b.WriteString(fmt.Sprintf("  Forward: %s\n", wizardValueStyle.Render(forward)))
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to start, n to restart, Esc to go back."))
	}

	return b.String()
}

func (w *wizardModel) progressBar() string {
	steps := []struct {
		num  int
		name string
	}{
		{1, "Host"},
		{2, "Local port"},
		{3, "Remote port"},
		{4, "Confirm"},
	}

	var parts []string
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.num, s.name)
		if s.num == int(w.step)+1 {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func parsePort(raw string) (int, bool) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if err := tunnel.ValidatePort("port", port); err != nil {
		return 0, false
	}
	return port, true
}

// addProgram adapts wizardModel to the tea.Model interface.
type addProgram struct {
	wizard wizardModel
	opts   *AddOptions
}

func (p *addProgram) Init() tea.Cmd {
	return p.wizard.Init()
}

func (p *addProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, opts, cmd := p.wizard.Update(msg)
	if done {
		p.opts = opts
		return p, tea.Quit
	}
	return p, cmd
}

func (p *addProgram) View() string {
	return p.wizard.View()
}

// RunAddWizard runs the interactive tunnel creation wizard. A nil
// result without an error means the user cancelled.
func RunAddWizard() (*AddOptions, error) {
	p := &addProgram{wizard: newWizardModel()}
	prog := tea.NewProgram(p, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	return p.opts, nil
}
