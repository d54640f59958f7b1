package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
	"github.com/johanforsgren/toolmanager/internal/ui/components"
	"github.com/johanforsgren/toolmanager/internal/ui/views"
)

type ViewState int

const (
	ViewRepoList ViewState = iota
	ViewRepoInfo
)

func (s ViewState) String() string {
	switch s {
	case ViewRepoInfo:
		return "Repository"
	default:
		return "Repositories"
	}
}

type Options struct {
	Account     string
	Destination string
}

type Model struct {
	state           ViewState
	width           int
	height          int
	topBar          *components.TopBarModel
	statusBar       *components.StatusBarModel
	commandBar      *components.CommandBarModel
	repoList        *views.RepoListViewModel
	repoInfo        *views.RepoInfoViewModel
	logsView        *views.LogsViewModel
	spinner         spinner.Model
	loading         bool
	loadErr         error
	downloading     map[string]bool // in-flight archives by repository name
	catalog         domain.Catalog
	selection       domain.Selection
	downloader      domain.Downloader
	destDir         string
	ctx             context.Context
	commandRegistry *CommandRegistry
}

func NewModel(ctx context.Context, catalog domain.Catalog, selection domain.Selection, downloader domain.Downloader, opts Options) Model {
	if opts.Account == "" {
		opts.Account = common.DefaultAccount
	}
	if opts.Destination == "" {
		opts.Destination = "."
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	m := Model{
		state:           ViewRepoList,
		topBar:          components.NewTopBar(opts.Account),
		statusBar:       components.NewStatusBar(),
		commandBar:      components.NewCommandBar(),
		repoList:        views.NewRepoListView(),
		repoInfo:        views.NewRepoInfoView(),
		logsView:        views.NewLogsView(),
		spinner:         sp,
		loading:         true,
		downloading:     make(map[string]bool),
		catalog:         catalog,
		selection:       selection,
		downloader:      downloader,
		destDir:         opts.Destination,
		ctx:             ctx,
		commandRegistry: NewCommandRegistry(),
	}
	m.topBar.SetDestination(opts.Destination)
	m.updateShortcuts()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

func (m Model) isBusy() bool {
	return m.loading || len(m.downloading) > 0
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.topBar.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.commandBar.SetWidth(msg.Width)
		m.repoList.SetSize(msg.Width, msg.Height)
		m.repoInfo.SetSize(msg.Width, msg.Height)
		m.logsView.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.isBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.repoInfo.SetSpinner(m.spinner.View())
		return m, cmd

	case CatalogLoadedMsg:
		m.loading = false
		m.loadErr = nil
		m.repoList.SetEntries(msg.entries)
		m.topBar.SetRepoCount(len(msg.entries))
		m.statusBar.SetMessage(fmt.Sprintf("Loaded %d repositories", len(msg.entries)), false)
		return m, nil

	case CatalogLoadFailedMsg:
		m.loading = false
		m.loadErr = msg.err
		m.statusBar.SetMessage(common.UserMessage(msg.err), true)
		return m, nil

	case RepoResolvedMsg:
		m.state = ViewRepoInfo
		m.repoInfo.SetRepository(msg.repo)
		if m.downloading[msg.repo.Name] {
			m.repoInfo.StartDownload()
		}
		m.topBar.SetContext(msg.repo.Name)
		m.topBar.SetView(m.state.String())
		m.updateShortcuts()
		if msg.download {
			return m.startDownload()
		}
		return m, nil

	case RepoNotFoundMsg:
		m.selection.Clear()
		m.statusBar.SetMessage(common.UserMessage(msg.err), true)
		return m, nil

	case DownloadFinishedMsg:
		return m.finishDownload(msg)
	}

	return m, m.updateActiveView(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return handleQuitKey(m)
	}

	if m.commandBar.IsActive() {
		switch key {
		case "enter":
			return m.handleCommand()
		case "esc":
			m.commandBar.Deactivate()
			return m, nil
		default:
			return m, m.commandBar.Update(msg)
		}
	}

	if m.logsView.IsActive() {
		switch key {
		case "esc", "q":
			m.logsView.Deactivate()
			return m, nil
		default:
			return m, m.logsView.Update(msg)
		}
	}

	if m.state == ViewRepoList && m.repoList.IsFiltering() {
		switch key {
		case "enter":
			m.repoList.ApplyFilter()
		case "esc":
			m.repoList.ClearFilter()
		default:
			return m, m.repoList.Update(msg)
		}
		return m, nil
	}

	if newModel, cmd, handled := m.commandRegistry.HandleKey(m, key); handled {
		return newModel, cmd
	}

	return m, m.updateActiveView(msg)
}

func (m Model) updateActiveView(msg tea.Msg) tea.Cmd {
	switch m.state {
	case ViewRepoList:
		return m.repoList.Update(msg)
	case ViewRepoInfo:
		return m.repoInfo.Update(msg)
	}
	return nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch {
	case m.logsView.IsActive():
		content = m.logsView.View()
	case m.loading:
		content = LoadingStyle.Render(m.spinner.View() + " Loading repositories...")
	case m.loadErr != nil && m.repoList.Len() == 0:
		content = ErrorStyle.Render(common.UserMessage(m.loadErr))
	case m.state == ViewRepoInfo:
		content = m.repoInfo.View()
	default:
		content = m.repoList.View()
	}

	bottom := m.commandBar.View()
	if bottom == "" {
		bottom = m.statusBar.View()
	}

	return strings.Join([]string{m.topBar.View(), content, bottom}, "\n")
}

func (m Model) handleCommand() (tea.Model, tea.Cmd) {
	parts := strings.Fields(m.commandBar.Submit())
	if len(parts) == 0 {
		return m, nil
	}

	logger.Log("UI: Executing command: %s %v", parts[0], parts[1:])
	return m.commandRegistry.ExecuteCommand(m, parts[0], parts[1:])
}

// open records id as the selection and resolves it off the UI goroutine.
func (m Model) open(id domain.RepositoryID, download bool) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.selection.Select(id)
	logger.Log("UI: Selected %s", id)
	return m, m.resolveSelection(download)
}

func (m Model) navigateBack() (Model, tea.Cmd) {
	if m.state != ViewRepoInfo {
		return m, nil
	}
	logger.Log("UI: Navigating back to repository list")
	m.state = ViewRepoList
	m.selection.Clear()
	m.topBar.SetContext("")
	m.topBar.SetView(m.state.String())
	m.updateShortcuts()
	return m, nil
}

func (m Model) reload() (Model, tea.Cmd) {
	m.loading = true
	m.loadErr = nil
	m.statusBar.SetMessage("Loading repositories...", false)
	return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
}

func (m Model) startDownload() (Model, tea.Cmd) {
	repo := m.repoInfo.GetRepository()
	if repo == nil {
		return m, nil
	}
	if len(m.downloading) > 0 {
		m.statusBar.SetMessage("A download is already running", true)
		return m, nil
	}

	ticking := m.isBusy()
	m.downloading[repo.Name] = true
	m.repoInfo.StartDownload()
	m.statusBar.SetMessage(fmt.Sprintf("Downloading %s...", repo.Name), false)

	cmds := []tea.Cmd{m.download(repo.Clone())}
	if !ticking {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) finishDownload(msg DownloadFinishedMsg) (Model, tea.Cmd) {
	delete(m.downloading, msg.name)
	current := m.repoInfo.GetRepository()
	sameRepo := current != nil && current.Name == msg.name

	if msg.err != nil {
		if sameRepo {
			m.repoInfo.FailDownload()
		}
		m.statusBar.SetMessage(common.UserMessage(msg.err), true)
		return m, nil
	}

	if sameRepo {
		m.repoInfo.FinishDownload(msg.archive)
	}
	m.statusBar.SetMessage(fmt.Sprintf("Saved %s (%s)", msg.archive.Path, humanize.Bytes(uint64(msg.archive.Size))), false)
	return m, nil
}

func (m Model) loadCatalog() tea.Cmd {
	catalog := m.catalog
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := catalog.List(ctx)
		if err != nil {
			logger.LogError("LOAD_CATALOG", "UI", err)
			return CatalogLoadFailedMsg{err: err}
		}
		return CatalogLoadedMsg{entries: entries}
	}
}

func (m Model) resolveSelection(download bool) tea.Cmd {
	catalog := m.catalog
	selection := m.selection
	return func() tea.Msg {
		id, ok := selection.Current()
		if !ok {
			return RepoNotFoundMsg{err: common.ErrNotFound}
		}
		repo, err := catalog.Get(id)
		if err != nil {
			logger.LogError("RESOLVE", string(id), err)
			return RepoNotFoundMsg{id: id, err: err}
		}
		return RepoResolvedMsg{repo: repo, download: download}
	}
}

func (m Model) download(repo domain.Repository) tea.Cmd {
	downloader := m.downloader
	ctx := m.ctx
	dest := m.destDir
	return func() tea.Msg {
		archive, err := downloader.Download(ctx, repo, dest, nil)
		if err != nil {
			logger.LogError("DOWNLOAD", repo.Name, err)
		}
		return DownloadFinishedMsg{name: repo.Name, archive: archive, err: err}
	}
}

func (m Model) updateShortcuts() {
	m.topBar.SetShortcuts(m.commandRegistry.GetContextualShortcuts(m.state))
}

type CatalogLoadedMsg struct {
	entries []domain.CatalogEntry
}

type CatalogLoadFailedMsg struct {
	err error
}

type RepoResolvedMsg struct {
	repo     domain.Repository
	download bool
}

type RepoNotFoundMsg struct {
	id  domain.RepositoryID
	err error
}

type DownloadFinishedMsg struct {
	name    string
	archive *domain.Archive
	err     error
}
