// Package host integrates with the shell runtime that owns modules and
// their help text. The rest of the tool only talks to the Host interface;
// the production implementation shells out, and tests use Fake.
package host

import "context"

// Host is the module-loading and help-text facility of the script runtime.
type Host interface {
	// ImportModule loads a module from a file path under the given name.
	ImportModule(ctx context.Context, name, path string) error

	// RemoveModule unloads a module if it is loaded.
	RemoveModule(ctx context.Context, name string) error

	// ModuleCommands enumerates the commands belonging to a loaded module.
	ModuleCommands(ctx context.Context, module string) ([]string, error)

	// CommandHelp returns the full formatted help text for a command,
	// rendered at the given line width.
	CommandHelp(ctx context.Context, command string, width int) (string, error)

	// Reload makes freshly bundled definitions available by replacing any
	// loaded module of the same name with the one at path.
	Reload(ctx context.Context, module, path string) error
}
