package helptext

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

const sampleHelp = `
NAME
    Get-Foo

SYNOPSIS
    Does the thing.

SYNTAX
    Get-Foo [-Name] <String> [-Count <Int32>] [<CommonParameters>]

DESCRIPTION
    Retrieves foo objects from the module state.

PARAMETERS
    -Name <String>
        The name of the foo to retrieve.

        Required?                    true
        Position?                    1
        Default value
        Accept pipeline input?       false
        Accept wildcard characters?  false

    -Count <Int32>
        Maximum number of results.

        Required?                    false
        Position?                    2
        Default value                10
        Accept pipeline input?       false
        Accept wildcard characters?  true

    <CommonParameters>
        This cmdlet supports the common parameters.

INPUTS

OUTPUTS

    -------------------------- EXAMPLE 1 --------------------------

    PS C:\>Get-Foo -Name bar

    Retrieves the foo named bar.




    -------------------------- EXAMPLE 3 --------------------------

    PS C:\>Get-Foo -Name bar -Count 2

    Limits the result count.




RELATED LINKS
`

func TestExtractScalars(t *testing.T) {
	f, err := New().Extract(sampleHelp)
	require.NoError(t, err)

	require.Equal(t, "Get-Foo", f.Name)
	require.Equal(t, "Does the thing.", f.Synopsis)
	require.Equal(t, "Get-Foo [-Name] <String> [-Count <Int32>] [<CommonParameters>]", f.Syntax)
	require.Equal(t, "Retrieves foo objects from the module state.", f.Description)
}

func TestExtractParameters(t *testing.T) {
	f, err := New().Extract(sampleHelp)
	require.NoError(t, err)

	require.Len(t, f.Parameters, 2)

	name := f.Parameters[0]
	require.Equal(t, "Name", name.Name)
	require.Equal(t, "The name of the foo to retrieve.", name.Description)
	require.Equal(t, "true", name.Required)
	require.Equal(t, "1", name.Position)
	require.Equal(t, "", name.DefaultValue)
	require.Equal(t, "false", name.PipelineInput)
	require.Equal(t, "false", name.Wildcards)

	count := f.Parameters[1]
	require.Equal(t, "Count", count.Name)
	require.Equal(t, "Maximum number of results.", count.Description)
	require.Equal(t, "false", count.Required)
	require.Equal(t, "2", count.Position)
	require.Equal(t, "10", count.DefaultValue)
	require.Equal(t, "false", count.PipelineInput)
	require.Equal(t, "true", count.Wildcards)
}

func TestExtractExamplesPreserveNumbers(t *testing.T) {
	f, err := New().Extract(sampleHelp)
	require.NoError(t, err)

	require.Len(t, f.Examples, 2)
	require.Equal(t, 1, f.Examples[0].Number)
	require.Equal(t, 3, f.Examples[1].Number)
	require.Equal(t, "PS C:\\>Get-Foo -Name bar\n\n    Retrieves the foo named bar.", f.Examples[0].Body)
	require.Contains(t, f.Examples[1].Body, "Limits the result count.")
}

func TestExtractMissingSections(t *testing.T) {
	doc := "NAME\n    Get-Bare\n"
	f, err := New().Extract(doc)
	require.NoError(t, err)

	require.Equal(t, "Get-Bare", f.Name)
	require.Empty(t, f.Synopsis)
	require.Empty(t, f.Syntax)
	require.Empty(t, f.Description)
	require.Empty(t, f.Parameters)
	require.Empty(t, f.Examples)
}

func TestExtractDuplicateParametersPassThrough(t *testing.T) {
	doc := `
PARAMETERS
    -Name <String>
        First occurrence.

        Required?                    true
        Position?                    1
        Default value
        Accept pipeline input?       false
        Accept wildcard characters?  false

    -Name <String>
        Second occurrence.

        Required?                    false
        Position?                    2
        Default value                x
        Accept pipeline input?       true
        Accept wildcard characters?  false

NOTES
`
	f, err := New().Extract(doc)
	require.NoError(t, err)

	require.Len(t, f.Parameters, 2)
	require.Equal(t, "First occurrence.", f.Parameters[0].Description)
	require.Equal(t, "Second occurrence.", f.Parameters[1].Description)
}

func TestExtractInvalidUTF8(t *testing.T) {
	_, err := New().Extract(string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
	require.True(t, apperrors.IsMalformedInput(err))
}

func TestExtractIdempotent(t *testing.T) {
	e := New()
	first, err := e.Extract(sampleHelp)
	require.NoError(t, err)
	second, err := e.Extract(sampleHelp)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExtractCaseSensitiveHeaders(t *testing.T) {
	// Lowercase headers are not the formatter's layout and must not match.
	doc := "name\n    Get-Foo\n\nsynopsis\n    Nope.\n"
	f, err := New().Extract(doc)
	require.NoError(t, err)
	require.Empty(t, f.Name)
	require.Empty(t, f.Synopsis)
}
