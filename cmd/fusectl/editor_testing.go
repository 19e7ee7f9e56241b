package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

// editorHelper drives an editorModel the way the bubbletea runtime would,
// except that commands are returned to the test instead of run.
type editorHelper struct {
	model editorModel
	cmd   tea.Cmd
}

func newEditorHelper(path string, w *fuses.Wire) *editorHelper {
	return &editorHelper{model: newEditorModel(path, w, &fuses.Options{})}
}

func (h *editorHelper) send(msg tea.Msg) *editorHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(editorModel)
	h.cmd = cmd
	return h
}

// SendKey simulates a special key press
func (h *editorHelper) SendKey(keyType tea.KeyType) *editorHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *editorHelper) SendKeyRune(r rune) *editorHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// RunCmd executes the last returned command and feeds its message back.
func (h *editorHelper) RunCmd() *editorHelper {
	if h.cmd == nil {
		return h
	}
	return h.send(h.cmd())
}
