package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TopBarModel struct {
	width       int
	title       string
	account     string
	repoCount   int
	loaded      bool
	currentRepo string
	destination string
	currentView string
	shortcuts   []string
}

var (
	titleStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleOrangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	valueWhiteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	shortcutBlueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	descGrayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
)

const (
	contextRows     = 4
	contextColWidth = 45
	colMargin       = 4
	maxValueWidth   = 32
)

func NewTopBar(account string) *TopBarModel {
	return &TopBarModel{
		title:   account + " Tool Manager",
		account: account,
	}
}

func (m *TopBarModel) SetWidth(width int) {
	m.width = width
}

func (m *TopBarModel) SetRepoCount(count int) {
	m.repoCount = count
	m.loaded = true
}

func (m *TopBarModel) SetContext(repo string) {
	m.currentRepo = repo
}

func (m *TopBarModel) SetDestination(dir string) {
	m.destination = dir
}

func (m *TopBarModel) SetView(view string) {
	m.currentView = view
}

func (m *TopBarModel) SetShortcuts(shortcuts []string) {
	m.shortcuts = shortcuts
}

func (m *TopBarModel) View() string {
	contextLines := m.buildContextInfo()
	col1, col2, col1Width := m.buildShortcutsDisplay()

	lines := []string{titleOrangeStyle.Render(m.title), ""}

	for i := 0; i < contextRows; i++ {
		var contextCol, sc1, sc2 string
		if i < len(contextLines) {
			contextCol = contextLines[i]
		}
		if i < len(col1) {
			sc1 = col1[i]
		}
		if i < len(col2) {
			sc2 = col2[i]
		}

		padding := contextColWidth - lipgloss.Width(contextCol)
		if padding < 1 {
			padding = 1
		}
		line := contextCol + strings.Repeat(" ", padding) + sc1

		if sc2 != "" {
			padding2 := col1Width - lipgloss.Width(sc1) + colMargin
			if padding2 < colMargin {
				padding2 = colMargin
			}
			line += strings.Repeat(" ", padding2) + sc2
		}

		lines = append(lines, line)
	}

	return titleStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}

func (m *TopBarModel) buildContextInfo() []string {
	repos := "loading..."
	if m.loaded {
		repos = fmt.Sprintf("%d", m.repoCount)
	}

	lines := []string{
		labelled("👤", "Account: ", m.account),
		labelled("📦", "Repos: ", repos),
	}

	if m.currentRepo != "" {
		lines = append(lines, labelled("📋", "Repo: ", m.currentRepo))
	} else if m.destination != "" {
		lines = append(lines, labelled("💾", "Saving to: ", m.destination))
	}

	view := m.currentView
	if view == "" {
		view = "Repositories"
	}
	lines = append(lines, labelled("🎯", "View: ", view))

	return lines
}

func labelled(emoji, label, value string) string {
	if len(value) > maxValueWidth {
		value = value[:maxValueWidth-3] + "..."
	}
	return emoji + " " + titleOrangeStyle.Render(label) + valueWhiteStyle.Render(value)
}

// buildShortcutsDisplay formats "<key> description" entries into up to two
// columns of contextRows each.
func (m *TopBarModel) buildShortcutsDisplay() ([]string, []string, int) {
	var formatted []string
	maxWidth := 0

	for _, shortcut := range m.shortcuts {
		parts := strings.SplitN(shortcut, ">", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "<")
		desc := strings.TrimSpace(parts[1])

		entry := shortcutBlueStyle.Render("<"+key+">") + " " + descGrayStyle.Render(desc)
		formatted = append(formatted, entry)

		if w := lipgloss.Width(entry); w > maxWidth {
			maxWidth = w
		}
	}

	if len(formatted) <= contextRows {
		return formatted, nil, maxWidth
	}
	return formatted[:contextRows], formatted[contextRows:], maxWidth
}
