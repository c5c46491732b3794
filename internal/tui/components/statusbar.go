package components

import (
	"github.com/theirongolddev/horizon/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. message, when set, replaces
// the key hints on the left; info is right-aligned.
func RenderStatusBar(width int, message, info string, isErr bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Red)
	}

	left := base.Render(" [?]help  [r]eload  [q]uit")
	if message != "" {
		left = msgStyle.Render(" " + message)
	}
	right := base.Render(info + " ")

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + base.Render(spaces(padding)) + right
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
