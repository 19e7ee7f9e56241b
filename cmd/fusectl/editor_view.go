package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")).MarginBottom(1)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 1)
)

// View implements tea.Model
func (m editorModel) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	if m.confirm {
		// overlay wants models on both sides; rebuild them each render so
		// the background reflects the current state.
		fg := &staticView{content: m.renderConfirm()}
		bg := &staticView{content: m.renderMain()}
		return overlay.New(fg, bg, overlay.Center, overlay.Center, 0, 0).View()
	}
	return m.renderMain()
}

func (m editorModel) renderMain() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Fuse Editor  %s  v%d", filepath.Base(m.path), m.version)))
	b.WriteString("\n")

	width := 0
	for i := range m.states {
		width = max(width, len(fuses.Name(m.version, fuses.Fuse(i))))
	}
	for i, s := range m.states {
		f := fuses.Fuse(i)
		marker := "  "
		name := fmt.Sprintf("%-*s", width, fuses.Name(m.version, f))
		if i == m.cursor {
			marker = "> "
			name = cursorStyle.Render(name)
		} else {
			name = nameStyle.Render(name)
		}
		line := marker + name + "  " + renderState(s)
		if v, ok := m.pending[f]; ok {
			line += " → " + renderState(fuses.FromBool(v)) + " *"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d pending │ space: toggle │ w: write │ c: copy │ ?: help │ q: quit", len(m.pending))))
	return b.String()
}

func (m editorModel) renderConfirm() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Write these changes?"))
	b.WriteString("\n")
	for _, f := range m.changes() {
		fmt.Fprintf(&b, "%s: %s → %s\n", fuses.Name(m.version, f),
			m.states[f].Label(), fuses.FromBool(m.pending[f]).Label())
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("y: write │ n: cancel"))
	return dialogStyle.Render(b.String())
}

func (m editorModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, kb := range m.keys.bindings() {
		h := kb.Help()
		fmt.Fprintf(&b, "%-8s %s\n", h.Key, h.Desc)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or esc to close"))
	return dialogStyle.Render(b.String())
}

// staticView adapts pre-rendered text to tea.Model for the overlay.
type staticView struct {
	content string
}

func (v *staticView) Init() tea.Cmd                       { return nil }
func (v *staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v *staticView) View() string                        { return v.content }
