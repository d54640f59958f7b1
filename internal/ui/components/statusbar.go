package components

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	statusBaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(lipgloss.Color("#374151"))

	statusBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F9FAFB")).
				Bold(true).
				Padding(0, 1)

	infoBadgeColor  = lipgloss.Color("#7C3AED")
	errorBadgeColor = lipgloss.Color("#991B1B")
)

// StatusBarModel shows the outcome of the last action: a load, a
// download or a command. Errors carry a red badge.
type StatusBarModel struct {
	width   int
	message string
	isError bool
}

func NewStatusBar() *StatusBarModel {
	return &StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetMessage(message string, isError bool) {
	m.message = message
	m.isError = isError
}

func (m *StatusBarModel) Message() (string, bool) {
	return m.message, m.isError
}

func (m *StatusBarModel) badge() string {
	if m.message == "" {
		return ""
	}
	if m.isError {
		return statusBadgeStyle.Background(errorBadgeColor).Render("ERROR")
	}
	return statusBadgeStyle.Background(infoBadgeColor).Render("INFO")
}

func (m *StatusBarModel) View() string {
	badge := m.badge()
	room := m.width - lipgloss.Width(badge) - 1
	text := " " + ellipsize(m.message, room-1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		badge,
		statusBaseStyle.Width(max(room+1, 0)).Render(text),
	)
}

// ellipsize cuts s to at most n cells, ending in "..." when cut.
func ellipsize(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:min(n, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
