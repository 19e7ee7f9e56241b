package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/fusekit/pkg/fuses"
)

var (
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	inheritStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// renderState colours a fuse state label.
func renderState(s fuses.State) string {
	switch s {
	case fuses.Enable:
		return enabledStyle.Render(s.Label())
	case fuses.Disable:
		return disabledStyle.Render(s.Label())
	case fuses.Inherit:
		return inheritStyle.Render(s.Label())
	case fuses.Removed:
		return removedStyle.Render(s.Label())
	default:
		return s.Label()
	}
}
