package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

func TestFakeModuleCommands(t *testing.T) {
	f := NewFake()
	f.AddModule("Demo", "Get-A", "Get-B")

	commands, err := f.ModuleCommands(context.Background(), "Demo")
	require.NoError(t, err)
	require.Equal(t, []string{"Get-A", "Get-B"}, commands)

	_, err = f.ModuleCommands(context.Background(), "Nope")
	require.Error(t, err)
	require.True(t, apperrors.IsNotFound(err))
}

func TestFakeCommandHelp(t *testing.T) {
	f := NewFake()
	f.SetHelp("Get-A", "NAME\n    Get-A\n")

	help, err := f.CommandHelp(context.Background(), "Get-A", 500)
	require.NoError(t, err)
	require.Contains(t, help, "Get-A")

	_, err = f.CommandHelp(context.Background(), "Get-B", 500)
	require.Error(t, err)
	require.True(t, apperrors.IsNotFound(err))
}

func TestFakeRecordsReloads(t *testing.T) {
	f := NewFake()
	require.NoError(t, f.Reload(context.Background(), "Demo", "/out/Demo.psm1"))
	require.NoError(t, f.Reload(context.Background(), "Demo", "/out/Demo.psm1"))
	require.Len(t, f.Reloads, 2)
}
