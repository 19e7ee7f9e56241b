package fuses_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fusekit/internal/testutil"
	"github.com/joshuapare/fusekit/pkg/fuses"
)

func TestParseConfig(t *testing.T) {
	cfg, err := fuses.ParseConfig([]byte(`
version: 1
ignore_unsupported: true
reset_adhoc_darwin_signature: true
fuses:
  RunAsNode: false
  enablecookieencryption: true
  "7": true
`))
	require.NoError(t, err)
	assert.Equal(t, fuses.V1, cfg.Version)
	assert.True(t, cfg.IgnoreUnsupportedFuses)
	assert.True(t, cfg.ResetAdHocDarwinSignature)
	assert.False(t, cfg.StrictlyRequireAllFuses)
	assert.Equal(t, map[fuses.Fuse]bool{
		fuses.RunAsNode:                        false,
		fuses.EnableCookieEncryption:           true,
		fuses.GrantFileProtocolExtraPrivileges: true,
	}, cfg.Fuses)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"missing version", "fuses:\n  RunAsNode: true\n", nil},
		{"unknown version", "version: 4\n", fuses.ErrUnknownVersion},
		{"unknown key", "version: 1\nstrictly: true\n", nil},
		{"unknown fuse", "version: 1\nfuses:\n  RunAsDeno: true\n", fuses.ErrUnsupportedFuse},
		{"duplicate fuse", "version: 1\nfuses:\n  RunAsNode: true\n  runasnode: false\n", nil},
		{"strict and incomplete", "version: 1\nstrict: true\nfuses:\n  RunAsNode: true\n", fuses.ErrIncompleteConfig},
		{"empty document", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fuses.ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFileAndFlip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fuses.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\nfuses:\n  EnableCookieEncryption: true\n"), 0o644))

	cfg, err := fuses.LoadConfigFile(cfgPath)
	require.NoError(t, err)

	path := writeBinary(t, fuses.Enable, fuses.Disable)
	_, err = fuses.Flip(path, cfg, nil)
	require.NoError(t, err)

	wire, err := fuses.Read(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []fuses.State{fuses.Enable, fuses.Enable}, wire.States)

	_, err = fuses.LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatConfigRoundTrip(t *testing.T) {
	cfg := fuses.PartialConfig(fuses.V1, map[fuses.Fuse]bool{
		fuses.RunAsNode:           false,
		fuses.OnlyLoadAppFromAsar: true,
		fuses.Fuse(12):            true,
	})
	cfg.IgnoreUnsupportedFuses = true

	data, err := fuses.FormatConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "OnlyLoadAppFromAsar: true")
	assert.Contains(t, string(data), "fuse#12: true")

	back, err := fuses.ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Fuses, back.Fuses)
	assert.True(t, back.IgnoreUnsupportedFuses)
}

func TestParseConfigKeepsPositionsPastAnyWire(t *testing.T) {
	cfg, err := fuses.ParseConfig([]byte("version: 1\nignore_unsupported: true\nfuses:\n  \"255\": true\n  RunAsNode: true\n"))
	require.NoError(t, err)
	assert.Equal(t, map[fuses.Fuse]bool{255: true, fuses.RunAsNode: true}, cfg.Fuses)

	path := testutil.WriteFile(t, "electron", testutil.Binary(t, 1, fuses.Disable))
	n, err := fuses.Flip(path, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
