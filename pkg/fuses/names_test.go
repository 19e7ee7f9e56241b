package fuses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want fuses.Fuse
	}{
		{"RunAsNode", fuses.RunAsNode},
		{"runasnode", fuses.RunAsNode},
		{"  ENABLECOOKIEENCRYPTION ", fuses.EnableCookieEncryption},
		{"GrantFileProtocolExtraPrivileges", fuses.GrantFileProtocolExtraPrivileges},
		{"7", fuses.GrantFileProtocolExtraPrivileges},
		{"fuse#12", 12},
	}
	for _, tt := range tests {
		got, err := fuses.Lookup(fuses.V1, tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLookupErrors(t *testing.T) {
	_, err := fuses.Lookup(fuses.V1, "EnableEverything")
	require.ErrorIs(t, err, fuses.ErrUnsupportedFuse)

	_, err = fuses.Lookup(fuses.V1, "-2")
	require.ErrorIs(t, err, fuses.ErrUnsupportedFuse)

	_, err = fuses.Lookup(9, "RunAsNode")
	require.ErrorIs(t, err, fuses.ErrUnknownVersion)
}

func TestName(t *testing.T) {
	assert.Equal(t, "LoadBrowserProcessSpecificV8Snapshot", fuses.Name(fuses.V1, fuses.LoadBrowserProcessSpecificV8Snapshot))
	assert.Equal(t, "fuse#8", fuses.Name(fuses.V1, 8))
	assert.Equal(t, "fuse#0", fuses.Name(9, 0))
	assert.Len(t, fuses.KnownFuses(fuses.V1), 8)
	assert.True(t, fuses.Supported(fuses.V1))
	assert.False(t, fuses.Supported(2))
}
