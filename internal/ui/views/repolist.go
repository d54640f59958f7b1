package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

type RepoListViewModel struct {
	table table.Model

	// Catalog order; never reordered by filtering.
	source []domain.CatalogEntry

	visible []domain.CatalogEntry

	width       int
	height      int
	filterInput textinput.Model
	filtering   bool
	filterText  string
}

// entrySource adapts the catalog snapshot to fuzzy.Source, matching on the
// name and description together.
type entrySource []domain.CatalogEntry

func (s entrySource) String(i int) string {
	return s[i].Repository.Name + " " + s[i].Repository.Description
}

func (s entrySource) Len() int { return len(s) }

const (
	reqsWidth     = 6
	minNameWidth  = 16
	maxNameWidth  = 32
	minDescWidth  = 20
	columnPadding = 6
)

func NewRepoListView() *RepoListViewModel {
	t := table.New(
		table.WithColumns(repoColumns(minNameWidth, minDescWidth)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		Bold(false).
		Foreground(lipgloss.Color("#6B7280"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F59E0B")).
		Background(lipgloss.Color("#1F2937")).
		Bold(true)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Filter by name or description..."
	ti.CharLimit = 100

	return &RepoListViewModel{
		table:       t,
		filterInput: ti,
	}
}

func repoColumns(nameWidth, descWidth int) []table.Column {
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Description", Width: descWidth},
		{Title: "Reqs", Width: reqsWidth},
	}
}

func (m *RepoListViewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(1, height-9))
	m.updateColumnWidths()
}

func (m *RepoListViewModel) updateColumnWidths() {
	nameWidth := clamp(m.width/4, minNameWidth, maxNameWidth)
	descWidth := max(minDescWidth, m.width-nameWidth-reqsWidth-columnPadding)
	m.table.SetColumns(repoColumns(nameWidth, descWidth))
	m.table.SetRows(m.entriesToRows(m.visible))
}

func (m *RepoListViewModel) SetEntries(entries []domain.CatalogEntry) {
	m.source = append([]domain.CatalogEntry(nil), entries...)
	m.rebuild()
}

func (m *RepoListViewModel) Len() int {
	return len(m.source)
}

// source → filter → visible → rows
func (m *RepoListViewModel) rebuild() {
	m.visible = m.filterEntries(m.source)
	m.table.SetRows(m.entriesToRows(m.visible))
	if m.table.Cursor() >= len(m.visible) {
		m.table.SetCursor(max(0, len(m.visible)-1))
	}
}

// filterEntries keeps the fuzzy matches but shows them in catalog order, so
// the list does not jump around while typing.
func (m *RepoListViewModel) filterEntries(entries []domain.CatalogEntry) []domain.CatalogEntry {
	if strings.TrimSpace(m.filterText) == "" {
		return entries
	}

	matches := fuzzy.FindFrom(m.filterText, entrySource(entries))
	indexes := make([]int, len(matches))
	for i, match := range matches {
		indexes[i] = match.Index
	}
	sort.Ints(indexes)

	out := make([]domain.CatalogEntry, len(indexes))
	for i, idx := range indexes {
		out[i] = entries[idx]
	}
	return out
}

func (m *RepoListViewModel) entriesToRows(entries []domain.CatalogEntry) []table.Row {
	cols := m.table.Columns()
	nameWidth, descWidth := cols[0].Width, cols[1].Width

	rows := make([]table.Row, len(entries))
	for i, entry := range entries {
		repo := entry.Repository
		rows[i] = table.Row{
			truncateString(repo.Name, nameWidth),
			truncateString(repo.Description, descWidth),
			fmt.Sprintf("%d", len(repo.Requirements)),
		}
	}
	return rows
}

// GetSelectedID returns the identifier under the cursor, or false when the
// visible list is empty.
func (m *RepoListViewModel) GetSelectedID() (domain.RepositoryID, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return "", false
	}
	return m.visible[idx].ID, true
}

func (m *RepoListViewModel) Visible() []domain.CatalogEntry {
	return m.visible
}

func (m *RepoListViewModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.filtering {
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filterText = m.filterInput.Value()
		m.rebuild()
	} else {
		m.table, cmd = m.table.Update(msg)
	}
	return cmd
}

func (m *RepoListViewModel) ActivateFilter() {
	m.filtering = true
	m.filterInput.SetValue(m.filterText)
	m.filterInput.Focus()
}

func (m *RepoListViewModel) ApplyFilter() {
	m.filterText = m.filterInput.Value()
	m.filtering = false
	m.filterInput.Blur()
	m.rebuild()
}

func (m *RepoListViewModel) ClearFilter() {
	m.filterText = ""
	m.filterInput.SetValue("")
	m.filtering = false
	m.filterInput.Blur()
	m.rebuild()
}

func (m *RepoListViewModel) IsFiltering() bool {
	return m.filtering
}

func (m *RepoListViewModel) GetFilterText() string {
	return m.filterText
}

func (m *RepoListViewModel) View() string {
	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		Render("\n" + m.helpText())

	var content string
	if len(m.source) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true).
			Padding(1, 2).
			Render("No repositories found")
	} else {
		content = m.table.View()
	}

	if m.filtering {
		filterStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
		content += "\n" + filterStyle.Render("Filter: ") + m.filterInput.View()
	}

	return content + help
}

func (m *RepoListViewModel) helpText() string {
	if m.filtering {
		return "Type to filter | Enter: Apply | Esc: Clear"
	}
	if m.filterText != "" {
		return "Enter: More | d: Download | /: Filter | Esc: Clear filter | q: Exit"
	}
	return "Enter: More | d: Download | /: Filter | r: Reload | q: Exit"
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
