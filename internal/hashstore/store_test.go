package hashstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutAndHashes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := map[string]string{"a.ps1": "h1", "b.ps1": "h2"}
	require.NoError(t, s.Put(ctx, "Demo", in))

	out, err := s.Hashes(ctx, "Demo")
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestPutReplacesPreviousSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "Demo", map[string]string{"a.ps1": "h1", "b.ps1": "h2"}))
	require.NoError(t, s.Put(ctx, "Demo", map[string]string{"a.ps1": "h3"}))

	out, err := s.Hashes(ctx, "Demo")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a.ps1": "h3"}, out)
}

func TestModulesAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "One", map[string]string{"a.ps1": "h1"}))
	require.NoError(t, s.Put(ctx, "Two", map[string]string{"b.ps1": "h2"}))

	one, err := s.Hashes(ctx, "One")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a.ps1": "h1"}, one)
}

func TestChanged(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := map[string]string{"a.ps1": "h1", "b.ps1": "h2"}

	t.Run("empty store counts as changed", func(t *testing.T) {
		changed, err := s.Changed(ctx, "Demo", set)
		require.NoError(t, err)
		require.True(t, changed)
	})

	require.NoError(t, s.Put(ctx, "Demo", set))

	t.Run("identical set is unchanged", func(t *testing.T) {
		changed, err := s.Changed(ctx, "Demo", map[string]string{"a.ps1": "h1", "b.ps1": "h2"})
		require.NoError(t, err)
		require.False(t, changed)
	})

	t.Run("modified hash is changed", func(t *testing.T) {
		changed, err := s.Changed(ctx, "Demo", map[string]string{"a.ps1": "h9", "b.ps1": "h2"})
		require.NoError(t, err)
		require.True(t, changed)
	})

	t.Run("added file is changed", func(t *testing.T) {
		changed, err := s.Changed(ctx, "Demo", map[string]string{"a.ps1": "h1", "b.ps1": "h2", "c.ps1": "h3"})
		require.NoError(t, err)
		require.True(t, changed)
	})
}
