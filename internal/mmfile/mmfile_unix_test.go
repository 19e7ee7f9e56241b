//go:build linux || darwin || freebsd

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapReadOnlyUnix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bin")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	data, release, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, want, data)

	require.NoError(t, release())
	// Second release is a no-op.
	require.NoError(t, release())
}

func TestMapReadOnlyUnixZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, release, err := Map(path)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, release)
	require.NoError(t, release())
}

func TestMapMissingFile(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
