package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/johanforsgren/toolmanager/internal/logger"
)

var kindColors = map[logger.Kind]lipgloss.Color{
	logger.KindError:     lipgloss.Color("#EF4444"),
	logger.KindFileWrite: lipgloss.Color("#F59E0B"),
	logger.KindFileOpen:  lipgloss.Color("#10B981"),
	logger.KindHTTP:      lipgloss.Color("#3B82F6"),
}

type LogsViewModel struct {
	width  int
	height int
	offset int
	active bool
	logs   []logger.LogEntry
}

func NewLogsView() *LogsViewModel {
	return &LogsViewModel{}
}

func (m *LogsViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Activate snapshots the log buffer and scrolls to the newest entries.
func (m *LogsViewModel) Activate() {
	m.active = true
	m.logs = logger.GetLogs()
	m.offset = m.maxOffset()
}

func (m *LogsViewModel) Deactivate() {
	m.active = false
	m.offset = 0
}

func (m *LogsViewModel) IsActive() bool {
	return m.active
}

func (m *LogsViewModel) Offset() int {
	return m.offset
}

func (m *LogsViewModel) getVisibleLines() int {
	return max(1, m.height-8)
}

func (m *LogsViewModel) maxOffset() int {
	return max(0, len(m.logs)-m.getVisibleLines())
}

func (m *LogsViewModel) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		m.offset--
	case "down", "j":
		m.offset++
	case "pgup":
		m.offset -= m.getVisibleLines()
	case "pgdown":
		m.offset += m.getVisibleLines()
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxOffset()
	}
	m.offset = clamp(m.offset, 0, m.maxOffset())

	return nil
}

func (m *LogsViewModel) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Padding(1, 0)

	b.WriteString(titleStyle.Render(fmt.Sprintf("Session Logs (%d entries)", len(m.logs))))
	b.WriteString("\n\n")

	if len(m.logs) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true).
			Render("No logs yet"))
	} else {
		end := min(m.offset+m.getVisibleLines(), len(m.logs))
		for _, entry := range m.logs[m.offset:end] {
			color, ok := kindColors[entry.Kind]
			if !ok {
				color = lipgloss.Color("#E5E7EB")
			}
			// HTTP entries span several lines; the first one is enough here.
			line, _, _ := strings.Cut(entry.String(), "\n")
			timestamp := entry.Timestamp.Format("15:04:05.000")

			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("[%s] %s", timestamp, line)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	scrollInfo := ""
	if len(m.logs) > m.getVisibleLines() {
		scrollInfo = fmt.Sprintf(" | Showing %d-%d of %d", m.offset+1, min(m.offset+m.getVisibleLines(), len(m.logs)), len(m.logs))
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		Render("j/k: Scroll | PgUp/PgDn: Page | g/G: Top/Bottom | Esc: Close" + scrollInfo))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Padding(1, 2).
		Width(max(0, m.width-4)).
		Render(b.String())
}
