package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound(CategoryHost, "module", "Demo")
	require.True(t, IsNotFound(err))
	require.False(t, IsMalformedInput(err))
	require.Contains(t, err.Error(), `module "Demo"`)
}

func TestMalformedInput(t *testing.T) {
	err := MalformedInput(CategoryExtract, "bad bytes")
	require.True(t, IsMalformedInput(err))
	require.False(t, IsNotFound(err))
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	inner := NotFound(CategoryBundle, "source directory", "/nope")
	outer := fmt.Errorf("bundling Demo: %w", inner)
	require.True(t, IsNotFound(outer))

	wrapped := Wrap(inner, CategoryRender, "while rendering")
	require.True(t, IsNotFound(wrapped))
}

func TestErrorFormatting(t *testing.T) {
	plain := New(CategoryConfig, "module.name is required")
	require.Equal(t, "config: module.name is required", plain.Error())

	caused := Wrap(fmt.Errorf("boom"), CategoryWatch, "watcher died")
	require.Equal(t, "watch: watcher died: boom", caused.Error())
}
