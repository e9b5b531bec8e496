package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLogo renders the spaced CAREERLENS wordmark, alternating between
// the two brand blues.
func renderLogo() string {
	const text = "CAREERLENS"
	colors := [2]lipgloss.Color{"#3b82f6", "#60a5fa"}
	var out strings.Builder
	for i, ch := range text {
		s := lipgloss.NewStyle().Bold(true).Foreground(colors[i%2])
		out.WriteString(s.Render(string(ch)))
		if i < len(text)-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Accent / action styles
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))

	topRoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b")).
			Bold(true)

	barFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4caf50"))

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2a2a36"))

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	flaggedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Bold(true)

	insightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8a84c")).
			Italic(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Width(16)

	fieldErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060")).
			Italic(true)
)

// helpEntry renders a key/label pair for the help bar.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// renderBar renders a confidence percentage as a filled bar of the given
// width, mirroring the progress bars of the web dashboard.
func renderBar(confidence float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(confidence / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s", bar, dimStyle.Render(fmt.Sprintf("%.0f%%", confidence)))
}
