package system

import (
	"context"
	"path/filepath"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command names to responses.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// LookPaths overrides resolved paths by binary name. Unlisted names
	// resolve to /usr/bin/<name>.
	LookPaths map[string]string

	// LookPathErr is returned by LookPath if set.
	LookPathErr error

	// OnRun, if set, is called after each Run is recorded. Tests use it
	// to simulate side effects such as a supervisor writing its pidfile.
	OnRun func(cmd MockCommand)
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
	Env  []string
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
	}
}

// AddResponse adds a response for a command name.
func (m *MockExecutor) AddResponse(name string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[name] = MockResponse{Output: output, Err: err}
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	if path, ok := m.LookPaths[name]; ok {
		return path, nil
	}
	return filepath.Join("/usr/bin", name), nil
}

func (m *MockExecutor) Run(ctx context.Context, extraEnv []string, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	cmd := MockCommand{Name: name, Args: args, Env: extraEnv}
	m.Commands = append(m.Commands, cmd)
	resp, ok := m.Responses[name]
	if !ok {
		resp, ok = m.Responses[filepath.Base(name)]
	}
	if !ok {
		resp = m.DefaultResponse
	}
	onRun := m.OnRun
	m.mu.Unlock()

	if onRun != nil {
		onRun(cmd)
	}
	return resp.Output, resp.Err
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
