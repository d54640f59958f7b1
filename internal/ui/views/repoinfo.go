package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

type DownloadState int

const (
	DownloadIdle DownloadState = iota
	DownloadRunning
	DownloadDone
	DownloadFailed
)

const (
	labelIdle      = "[-]"
	labelCompleted = "[Download completed!]"
	labelFailed    = "[Download failed]"
)

type RepoInfoViewModel struct {
	repo     *domain.Repository
	viewport viewport.Model
	width    int
	height   int

	download DownloadState
	archive  *domain.Archive
	spinner  string
}

func NewRepoInfoView() *RepoInfoViewModel {
	return &RepoInfoViewModel{
		viewport: viewport.New(0, 0),
	}
}

func (m *RepoInfoViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-12)
	m.updateViewport()
}

// SetRepository shows repo and resets the download label.
func (m *RepoInfoViewModel) SetRepository(repo domain.Repository) {
	m.repo = &repo
	m.download = DownloadIdle
	m.archive = nil
	m.viewport.GotoTop()
	m.updateViewport()
}

func (m *RepoInfoViewModel) GetRepository() *domain.Repository {
	return m.repo
}

func (m *RepoInfoViewModel) Clear() {
	m.repo = nil
	m.download = DownloadIdle
	m.archive = nil
	m.updateViewport()
}

func (m *RepoInfoViewModel) StartDownload() {
	m.download = DownloadRunning
	m.archive = nil
}

func (m *RepoInfoViewModel) SetSpinner(frame string) {
	m.spinner = frame
}

func (m *RepoInfoViewModel) FinishDownload(archive *domain.Archive) {
	m.download = DownloadDone
	m.archive = archive
}

func (m *RepoInfoViewModel) FailDownload() {
	m.download = DownloadFailed
	m.archive = nil
}

func (m *RepoInfoViewModel) DownloadState() DownloadState {
	return m.download
}

func (m *RepoInfoViewModel) IsDownloading() bool {
	return m.download == DownloadRunning
}

// StatusLabel is the text next to the Download action.
func (m *RepoInfoViewModel) StatusLabel() string {
	switch m.download {
	case DownloadRunning:
		return strings.TrimSpace(m.spinner + " Downloading...")
	case DownloadDone:
		if m.archive == nil {
			return labelCompleted
		}
		return fmt.Sprintf("%s %s (%s)", labelCompleted, m.archive.Path, humanize.Bytes(uint64(m.archive.Size)))
	case DownloadFailed:
		return labelFailed
	default:
		return labelIdle
	}
}

func (m *RepoInfoViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *RepoInfoViewModel) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	switch m.download {
	case DownloadDone:
		statusStyle = statusStyle.Foreground(lipgloss.Color("#10B981"))
	case DownloadFailed:
		statusStyle = statusStyle.Foreground(lipgloss.Color("#EF4444"))
	}

	download := labelStyle.Render("Download ") + statusStyle.Render(m.StatusLabel())

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		Render("\nd: Download | j/k: Scroll | Esc: Cancel | q: Exit")

	return m.viewport.View() + "\n" + download + "\n" + help
}

func (m *RepoInfoViewModel) updateViewport() {
	m.viewport.SetContent(m.renderDetails())
}

func (m *RepoInfoViewModel) renderDetails() string {
	if m.repo == nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true).
			Render("No repository selected")
	}

	var b strings.Builder

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F9FAFB"))
	if m.width > 16 {
		valueStyle = valueStyle.Width(m.width - 16)
	}
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	field := func(name, value string) {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-13s", name+":")))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	field("Name", m.repo.Name)
	field("URL", m.repo.URL)
	if m.repo.Description == "" {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-13s", "Description:")))
		b.WriteString(mutedStyle.Render("none"))
		b.WriteString("\n")
	} else {
		field("Description", m.repo.Description)
	}

	b.WriteString("\n")
	b.WriteString(keyStyle.Render(fmt.Sprintf("Requirements (%d)", len(m.repo.Requirements))))
	b.WriteString("\n")

	if len(m.repo.Requirements) == 0 {
		b.WriteString(mutedStyle.Render("  none listed"))
		b.WriteString("\n")
	}
	for _, req := range m.repo.Requirements {
		b.WriteString(valueStyle.Render("  • " + req))
		b.WriteString("\n")
	}

	return b.String()
}
