// Package tui holds the interactive terminal editors used by the CLI.
package tui

import "github.com/charmbracelet/lipgloss"

// StyleSet groups the styles shared by the editors.
type StyleSet struct {
	Title      lipgloss.Style
	Tag        lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	Dim        lipgloss.Style
	KbdKey     lipgloss.Style
	KbdDesc    lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() *StyleSet {
	accent := lipgloss.Color("212")
	return &StyleSet{
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1).
			MarginRight(1),
		Suggestion: lipgloss.NewStyle().PaddingLeft(2),
		Selected:   lipgloss.NewStyle().PaddingLeft(1).Foreground(accent).Bold(true),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		KbdKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		KbdDesc:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
