package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fusekit/internal/testutil"
	"github.com/joshuapare/fusekit/pkg/fuses"
)

func editorFor(t *testing.T, data []byte) (*editorHelper, string) {
	t.Helper()
	resetFlags()
	path := testutil.WriteFile(t, "electron", data)
	w, err := fuses.Read(path, nil)
	require.NoError(t, err)
	return newEditorHelper(path, w), path
}

func TestEditorToggleAndWrite(t *testing.T) {
	h, path := editorFor(t, testutil.UniversalBinary(t, 1, fuses.Enable, fuses.Disable, fuses.Inherit))

	h.SendKey(tea.KeySpace) // RunAsNode off
	h.SendKeyRune('j').SendKeyRune('j')
	h.SendKey(tea.KeyEnter) // inherited fuse on
	assert.Equal(t, map[fuses.Fuse]bool{
		fuses.RunAsNode:                            false,
		fuses.EnableNodeOptionsEnvironmentVariable: true,
	}, h.model.pending)
	assert.Contains(t, h.model.View(), "2 pending")

	h.SendKeyRune('w')
	require.True(t, h.model.confirm)
	assert.NotEmpty(t, h.model.View())
	dialog := h.model.renderConfirm()
	assert.Contains(t, dialog, "Write these changes?")
	assert.Contains(t, dialog, "RunAsNode: Enabled → Disabled")
	assert.Contains(t, dialog, "EnableNodeOptionsEnvironmentVariable: Inherited → Enabled")

	h.SendKeyRune('y')
	require.True(t, h.model.writing)
	require.NotNil(t, h.cmd)
	h.RunCmd()

	assert.False(t, h.model.writing)
	assert.Empty(t, h.model.pending)
	assert.Equal(t, "Wrote 2 of 2 fuse wire(s)", h.model.status)
	assert.Equal(t, []fuses.State{fuses.Disable, fuses.Disable, fuses.Enable}, h.model.states)

	wires, err := fuses.ReadAll(path, nil)
	require.NoError(t, err)
	require.Len(t, wires, 2)
	for _, w := range wires {
		assert.Equal(t, []fuses.State{fuses.Disable, fuses.Disable, fuses.Enable}, w.States)
	}
}

func TestEditorToggleBackCancelsChange(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Enable))

	h.SendKey(tea.KeySpace)
	assert.Len(t, h.model.pending, 1)
	h.SendKey(tea.KeySpace)
	assert.Empty(t, h.model.pending)

	h.SendKeyRune('w')
	assert.False(t, h.model.confirm)
	assert.Equal(t, "Nothing to write", h.model.status)
}

func TestEditorRemovedFuse(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Removed, fuses.Enable))

	h.SendKey(tea.KeySpace)
	assert.Empty(t, h.model.pending)
	assert.Contains(t, h.model.status, "RunAsNode has been removed")
}

func TestEditorRevertAndCursorBounds(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Enable, fuses.Enable))

	h.SendKeyRune('k')
	assert.Equal(t, 0, h.model.cursor)
	h.SendKeyRune('j').SendKeyRune('j').SendKeyRune('j')
	assert.Equal(t, 1, h.model.cursor)

	h.SendKey(tea.KeySpace)
	require.Len(t, h.model.pending, 1)
	h.SendKeyRune('u')
	assert.Empty(t, h.model.pending)
	assert.Equal(t, "Reverted EnableCookieEncryption", h.model.status)
}

func TestEditorCancelWrite(t *testing.T) {
	h, path := editorFor(t, testutil.Binary(t, 1, fuses.Enable))
	before := testutil.ReadFile(t, path)

	h.SendKey(tea.KeySpace).SendKeyRune('w').SendKey(tea.KeyEsc)
	assert.False(t, h.model.confirm)
	assert.Nil(t, h.cmd)
	assert.Len(t, h.model.pending, 1)
	assert.Equal(t, before, testutil.ReadFile(t, path))
}

func TestEditorWriteFailureKeepsChanges(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Enable))
	h.model.patch = func(string, *fuses.Config, *fuses.Options) (*fuses.Report, error) {
		return nil, errors.New("disk full")
	}

	h.SendKey(tea.KeySpace).SendKeyRune('w').SendKeyRune('y').RunCmd()
	assert.Equal(t, "Write failed: disk full", h.model.status)
	assert.Len(t, h.model.pending, 1)
	assert.Equal(t, []fuses.State{fuses.Enable}, h.model.states)
}

func TestEditorCopyConfig(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Enable, fuses.Removed, fuses.Inherit, fuses.Disable))
	var copied string
	h.model.copy = func(s string) error {
		copied = s
		return nil
	}

	h.SendKey(tea.KeySpace).SendKeyRune('c')
	assert.Equal(t, "Copied config to clipboard", h.model.status)

	cfg, err := fuses.ParseConfig([]byte(copied))
	require.NoError(t, err)
	assert.Equal(t, map[fuses.Fuse]bool{
		fuses.RunAsNode:                     false,
		fuses.EnableNodeCliInspectArguments: false,
	}, cfg.Fuses)

	h.model.copy = func(string) error { return errors.New("no clipboard") }
	h.SendKeyRune('c')
	assert.Equal(t, "Copy failed: no clipboard", h.model.status)
}

func TestEditorQuit(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Enable))

	h.SendKeyRune('q')
	require.NotNil(t, h.cmd)
	assert.Equal(t, tea.Quit(), h.cmd())

	h.SendKey(tea.KeySpace).SendKeyRune('q')
	assert.Nil(t, h.cmd)
	assert.True(t, h.model.quitArmed)
	h.SendKeyRune('q')
	require.NotNil(t, h.cmd)
}

func TestEditorHelp(t *testing.T) {
	h, _ := editorFor(t, testutil.Binary(t, 1, fuses.Enable))

	h.SendKeyRune('?')
	require.True(t, h.model.showHelp)
	view := h.model.View()
	for _, want := range []string{"toggle fuse", "write to binary", "copy as config"} {
		assert.True(t, strings.Contains(view, want), want)
	}

	// Keys other than close are swallowed while help is open.
	h.SendKey(tea.KeySpace)
	assert.Empty(t, h.model.pending)
	h.SendKey(tea.KeyEsc)
	assert.False(t, h.model.showHelp)
}
