package cmd

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary = lipgloss.Color("#8B5CF6") // Violet
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

type styles struct {
	Title  lipgloss.Style
	OK     lipgloss.Style
	Fail   lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style
	Item   lipgloss.Style
}

func newStyles(plain bool) styles {
	if plain {
		s := lipgloss.NewStyle()
		return styles{Title: s, OK: s, Fail: s, Muted: s, Header: s, Item: s.PaddingLeft(2)}
	}

	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		OK: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess),
		Fail: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError),
		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(colorError),
	}
}

// countStyle picks the failure style for non-zero error counts
func (s styles) countStyle(n int) lipgloss.Style {
	if n > 0 {
		return s.Fail
	}
	return s.OK
}
