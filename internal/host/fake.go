package host

import (
	"context"
	"sync"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

// Fake is an in-memory Host for tests. Seed Modules with command lists and
// Help with per-command help text; Reloads records reload calls in order.
type Fake struct {
	mu      sync.Mutex
	Modules map[string][]string
	Help    map[string]string
	Reloads []string
}

// NewFake creates an empty fake host.
func NewFake() *Fake {
	return &Fake{
		Modules: make(map[string][]string),
		Help:    make(map[string]string),
	}
}

// AddModule registers a module and its commands.
func (f *Fake) AddModule(name string, commands ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Modules[name] = commands
}

// SetHelp registers help text for a command.
func (f *Fake) SetHelp(command, help string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Help[command] = help
}

func (f *Fake) ImportModule(_ context.Context, name, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Modules[name]; !ok {
		f.Modules[name] = nil
	}
	return nil
}

func (f *Fake) RemoveModule(_ context.Context, _ string) error { return nil }

func (f *Fake) ModuleCommands(_ context.Context, module string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	commands, ok := f.Modules[module]
	if !ok {
		return nil, apperrors.NotFound(apperrors.CategoryHost, "module", module)
	}
	out := make([]string, len(commands))
	copy(out, commands)
	return out, nil
}

func (f *Fake) CommandHelp(_ context.Context, command string, _ int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	help, ok := f.Help[command]
	if !ok {
		return "", apperrors.NotFound(apperrors.CategoryHost, "command", command)
	}
	return help, nil
}

func (f *Fake) Reload(_ context.Context, module, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reloads = append(f.Reloads, module+"="+path)
	return nil
}
