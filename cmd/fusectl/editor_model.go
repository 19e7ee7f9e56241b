package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

// patchFunc matches fuses.Patch so tests can observe writes.
type patchFunc func(path string, cfg *fuses.Config, opts *fuses.Options) (*fuses.Report, error)

// writeDoneMsg carries the result of a background write.
type writeDoneMsg struct {
	report *fuses.Report
	err    error
}

// editorModel is the interactive fuse editor. It shows the first fuse wire
// of the binary; writes go through fuses.Patch and so reach every wire.
type editorModel struct {
	path    string
	version fuses.Version
	states  []fuses.State // as last read from disk
	pending map[fuses.Fuse]bool

	cursor    int
	keys      editorKeyMap
	confirm   bool
	showHelp  bool
	quitArmed bool
	writing   bool
	status    string
	width     int
	height    int

	opts  *fuses.Options
	patch patchFunc
	copy  func(string) error
}

func newEditorModel(path string, w *fuses.Wire, opts *fuses.Options) editorModel {
	return editorModel{
		path:    path,
		version: w.Version,
		states:  slices.Clone(w.States),
		pending: make(map[fuses.Fuse]bool),
		keys:    defaultEditorKeyMap(),
		opts:    opts,
		patch:   fuses.Patch,
		copy:    clipboard.WriteAll,
	}
}

// Init implements tea.Model
func (m editorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case writeDoneMsg:
		return m.finishWrite(msg), nil

	case tea.KeyMsg:
		if m.writing {
			return m, nil
		}
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.No) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		if m.confirm {
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m editorModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if len(m.pending) > 0 && !m.quitArmed {
			m.quitArmed = true
			m.status = "Unsaved changes, press q again to discard them"
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.states)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggle()

	case key.Matches(msg, m.keys.Revert):
		f := fuses.Fuse(m.cursor)
		if _, ok := m.pending[f]; ok {
			delete(m.pending, f)
			m.status = fmt.Sprintf("Reverted %s", fuses.Name(m.version, f))
		}

	case key.Matches(msg, m.keys.Write):
		if len(m.pending) == 0 {
			m.status = "Nothing to write"
			return m, nil
		}
		m.confirm = true

	case key.Matches(msg, m.keys.Copy):
		m.copyConfig()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m editorModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirm = false
		m.writing = true
		m.status = "Writing..."
		cfg := fuses.PartialConfig(m.version, m.pending)
		patch, path, opts := m.patch, m.path, m.opts
		return m, func() tea.Msg {
			report, err := patch(path, cfg, opts)
			return writeDoneMsg{report: report, err: err}
		}
	case key.Matches(msg, m.keys.No):
		m.confirm = false
		m.status = "Write cancelled"
	}
	return m, nil
}

func (m editorModel) finishWrite(msg writeDoneMsg) editorModel {
	m.writing = false
	if msg.err != nil {
		m.status = fmt.Sprintf("Write failed: %v", msg.err)
		return m
	}
	if len(msg.report.Regions) > 0 {
		m.states = slices.Clone(msg.report.Regions[0].After)
	}
	m.pending = make(map[fuses.Fuse]bool)
	m.status = fmt.Sprintf("Wrote %d of %d fuse wire(s)", msg.report.Written(), msg.report.Count())
	if n := len(msg.report.Warnings); n > 0 {
		m.status += fmt.Sprintf(", %d warning(s)", n)
	}
	return m
}

// toggle flips the fuse under the cursor. A pending value equal to the
// on-disk state is dropped so the change list only holds real changes.
func (m *editorModel) toggle() {
	if len(m.states) == 0 {
		return
	}
	f := fuses.Fuse(m.cursor)
	name := fuses.Name(m.version, f)
	if m.states[m.cursor] == fuses.Removed {
		m.status = fmt.Sprintf("%s has been removed, setting it is a noop", name)
		return
	}
	next := !m.enabled(m.cursor)
	if fuses.FromBool(next) == m.states[m.cursor] {
		delete(m.pending, f)
	} else {
		m.pending[f] = next
	}
	m.status = fmt.Sprintf("%s → %s", name, fuses.FromBool(next).Label())
}

// enabled is the value fuse i will have once pending changes are written.
func (m editorModel) enabled(i int) bool {
	if v, ok := m.pending[fuses.Fuse(i)]; ok {
		return v
	}
	return m.states[i] == fuses.Enable
}

// effectiveConfig describes every settable fuse with its post-write value.
// Removed and inherited fuses without a pending change are left out.
func (m editorModel) effectiveConfig() *fuses.Config {
	cfg := fuses.PartialConfig(m.version, nil)
	for i, s := range m.states {
		f := fuses.Fuse(i)
		switch {
		case s == fuses.Removed:
		case s == fuses.Inherit:
			if v, ok := m.pending[f]; ok {
				cfg.Set(f, v)
			}
		default:
			cfg.Set(f, m.enabled(i))
		}
	}
	return cfg
}

func (m *editorModel) copyConfig() {
	data, err := fuses.FormatConfig(m.effectiveConfig())
	if err == nil {
		err = m.copy(string(data))
	}
	if err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.status = "Copied config to clipboard"
}

// changes returns the pending changes in fuse order.
func (m editorModel) changes() []fuses.Fuse {
	return slices.Sorted(maps.Keys(m.pending))
}
