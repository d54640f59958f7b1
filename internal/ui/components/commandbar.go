package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxHistory = 50

// CommandBarModel is the ":" prompt. Submitted commands are kept so up/down
// can recall them.
type CommandBarModel struct {
	textInput textinput.Model
	width     int
	active    bool
	history   []string
	cursor    int
}

func NewCommandBar() *CommandBarModel {
	ti := textinput.New()
	ti.Placeholder = "download, logs, back, quit..."
	ti.CharLimit = 128
	ti.Width = 50

	return &CommandBarModel{
		textInput: ti,
	}
}

func (m *CommandBarModel) SetWidth(width int) {
	m.width = width
	if width > 10 {
		m.textInput.Width = width - 10
	}
}

func (m *CommandBarModel) Activate() {
	m.active = true
	m.cursor = len(m.history)
	m.textInput.Focus()
	m.setValue(":")
}

func (m *CommandBarModel) Deactivate() {
	m.active = false
	m.textInput.Blur()
	m.textInput.SetValue("")
}

func (m *CommandBarModel) IsActive() bool {
	return m.active
}

func (m *CommandBarModel) Value() string {
	return m.textInput.Value()
}

// Submit returns the entered command without its ":" prefix, records it in
// the history, and closes the bar.
func (m *CommandBarModel) Submit() string {
	input := strings.TrimSpace(strings.TrimPrefix(m.textInput.Value(), ":"))
	if input != "" && (len(m.history) == 0 || m.history[len(m.history)-1] != input) {
		m.history = append(m.history, input)
		if len(m.history) > maxHistory {
			m.history = m.history[1:]
		}
	}
	m.Deactivate()
	return input
}

func (m *CommandBarModel) History() []string {
	return append([]string(nil), m.history...)
}

func (m *CommandBarModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
				m.setValue(":" + m.history[m.cursor])
			}
			return nil
		case "down":
			if m.cursor < len(m.history)-1 {
				m.cursor++
				m.setValue(":" + m.history[m.cursor])
			} else {
				m.cursor = len(m.history)
				m.setValue(":")
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}

func (m *CommandBarModel) setValue(v string) {
	m.textInput.SetValue(v)
	m.textInput.CursorEnd()
}

func (m *CommandBarModel) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB")).
		Background(lipgloss.Color("#1F2937")).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(lipgloss.Color("#7C3AED")).
		Width(m.width)

	return style.Render(" " + m.textInput.View())
}
