package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := New("Get-A", "Get-B")

	require.True(t, s.Has("Get-A"))
	require.False(t, s.Has("Get-C"))
	require.Equal(t, 2, s.Len())

	s.Add("Get-C")
	require.True(t, s.Has("Get-C"))

	s.Delete("Get-A")
	require.False(t, s.Has("Get-A"))
	require.Equal(t, 2, s.Len())
}

func TestEmptySet(t *testing.T) {
	s := New[string]()
	require.Equal(t, 0, s.Len())
	require.False(t, s.Has("anything"))
}
