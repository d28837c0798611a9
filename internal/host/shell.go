package host

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

// Shell drives a PowerShell-compatible binary via one-shot invocations.
// Each call spawns a fresh process; module state does not persist between
// calls, so command scripts import what they need explicitly.
type Shell struct {
	bin string
}

// NewShell creates a host adapter around the given shell binary (e.g. "pwsh").
func NewShell(bin string) *Shell {
	return &Shell{bin: bin}
}

func (s *Shell) run(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, s.bin, "-NoProfile", "-NonInteractive", "-Command", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", apperrors.Wrap(
			fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())),
			apperrors.CategoryHost, "shell invocation failed")
	}
	return stdout.String(), nil
}

// ImportModule loads the module at path under the given name.
func (s *Shell) ImportModule(ctx context.Context, name, path string) error {
	_, err := s.run(ctx, fmt.Sprintf("Import-Module -Name %s -Force", quote(path)))
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryHost, fmt.Sprintf("import module %q", name))
	}
	return nil
}

// RemoveModule unloads the named module; unloading a module that is not
// loaded is not an error.
func (s *Shell) RemoveModule(ctx context.Context, name string) error {
	_, err := s.run(ctx, fmt.Sprintf("Remove-Module -Name %s -ErrorAction SilentlyContinue", quote(name)))
	return err
}

// ModuleCommands lists command names exported by a loaded module.
func (s *Shell) ModuleCommands(ctx context.Context, module string) ([]string, error) {
	out, err := s.run(ctx, fmt.Sprintf(
		"Get-Command -Module %s | Select-Object -ExpandProperty Name", quote(module)))
	if err != nil {
		return nil, err
	}
	var commands []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			commands = append(commands, name)
		}
	}
	if len(commands) == 0 {
		return nil, apperrors.NotFound(apperrors.CategoryHost, "module", module)
	}
	return commands, nil
}

// CommandHelp returns the full help text for a command at a fixed width.
// The width keeps the extractor's line-based layout assumptions valid.
func (s *Shell) CommandHelp(ctx context.Context, command string, width int) (string, error) {
	out, err := s.run(ctx, fmt.Sprintf(
		"Get-Help -Name %s -Full | Out-String -Width %d", quote(command), width))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", apperrors.NotFound(apperrors.CategoryHost, "command", command)
	}
	return out, nil
}

// Reload replaces any loaded module of the same name with the file at path.
func (s *Shell) Reload(ctx context.Context, module, path string) error {
	if err := s.RemoveModule(ctx, module); err != nil {
		return err
	}
	return s.ImportModule(ctx, module, path)
}

// quote wraps a value in single quotes for the shell, escaping embedded quotes.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
