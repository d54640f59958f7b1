package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandQuit
	CommandList
	CommandMore
	CommandDownload
	CommandReload
	CommandLogs
	CommandHelp
)

type Command struct {
	Type CommandType
	Args []string
}

// ParseCommand reads a command bar entry. The leading ":" is optional.
func ParseCommand(input string) Command {
	input = strings.TrimPrefix(strings.TrimSpace(input), ":")
	parts := strings.Fields(input)

	if len(parts) == 0 {
		return Command{Type: CommandUnknown}
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		return Command{Type: CommandQuit, Args: args}
	case "l", "list", "back", "cancel":
		return Command{Type: CommandList, Args: args}
	case "m", "more", "info", "open":
		return Command{Type: CommandMore, Args: args}
	case "d", "download", "dl":
		return Command{Type: CommandDownload, Args: args}
	case "r", "reload":
		return Command{Type: CommandReload, Args: args}
	case "logs":
		return Command{Type: CommandLogs, Args: args}
	case "h", "help":
		return Command{Type: CommandHelp, Args: args}
	default:
		return Command{Type: CommandUnknown, Args: args}
	}
}

type KeyHandler func(m Model) (Model, tea.Cmd)

type Shortcut struct {
	Keys        []string
	Label       string
	Description string
	Views       []ViewState
	Handler     KeyHandler
}

func (s Shortcut) appliesTo(state ViewState) bool {
	if len(s.Views) == 0 {
		return true
	}
	for _, v := range s.Views {
		if v == state {
			return true
		}
	}
	return false
}

type CommandRegistry struct {
	shortcuts []Shortcut
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		shortcuts: []Shortcut{
			{Keys: []string{"enter"}, Label: "enter", Description: "More", Views: []ViewState{ViewRepoList}, Handler: handleEnterKey},
			{Keys: []string{"d"}, Label: "d", Description: "Download", Handler: handleDownloadKey},
			{Keys: []string{"/"}, Label: "/", Description: "Filter", Views: []ViewState{ViewRepoList}, Handler: handleFilterKey},
			{Keys: []string{"r"}, Label: "r", Description: "Reload", Views: []ViewState{ViewRepoList}, Handler: handleReloadKey},
			{Keys: []string{"esc"}, Label: "esc", Description: "Cancel", Handler: handleEscKey},
			{Keys: []string{":"}, Label: ":", Description: "Command", Handler: handleCommandBarKey},
			{Keys: []string{"L"}, Label: "L", Description: "Logs", Handler: handleLogsKey},
			{Keys: []string{"q", "ctrl+c"}, Label: "q", Description: "Exit", Handler: handleQuitKey},
		},
	}
}

func (r *CommandRegistry) HandleKey(m Model, key string) (Model, tea.Cmd, bool) {
	for _, s := range r.shortcuts {
		if !s.appliesTo(m.state) {
			continue
		}
		for _, k := range s.Keys {
			if k == key {
				newModel, cmd := s.Handler(m)
				return newModel, cmd, true
			}
		}
	}
	return m, nil, false
}

// GetContextualShortcuts lists "<key> description" entries for the top bar.
func (r *CommandRegistry) GetContextualShortcuts(state ViewState) []string {
	var out []string
	for _, s := range r.shortcuts {
		if s.appliesTo(state) {
			out = append(out, fmt.Sprintf("<%s> %s", s.Label, s.Description))
		}
	}
	return out
}

func (r *CommandRegistry) ExecuteCommand(m Model, name string, args []string) (Model, tea.Cmd) {
	cmd := ParseCommand(strings.Join(append([]string{name}, args...), " "))

	switch cmd.Type {
	case CommandQuit:
		return handleQuitKey(m)
	case CommandList:
		if m.state == ViewRepoInfo {
			return m.navigateBack()
		}
		return m, nil
	case CommandMore:
		if len(cmd.Args) == 0 {
			return handleEnterKey(m)
		}
		return m.openByName(cmd.Args[0], false)
	case CommandDownload:
		if len(cmd.Args) == 0 {
			return handleDownloadKey(m)
		}
		return m.openByName(cmd.Args[0], true)
	case CommandReload:
		return handleReloadKey(m)
	case CommandLogs:
		return handleLogsKey(m)
	case CommandHelp:
		m.statusBar.SetMessage("Commands: more NAME, download [NAME], list, reload, logs, quit", false)
		return m, nil
	default:
		logger.Log("UI: Unknown command: %s", name)
		m.statusBar.SetMessage(fmt.Sprintf("Unknown command: %s", name), true)
		return m, nil
	}
}

func handleEnterKey(m Model) (Model, tea.Cmd) {
	id, ok := m.repoList.GetSelectedID()
	if !ok {
		return m, nil
	}
	return m.open(id, false)
}

func handleDownloadKey(m Model) (Model, tea.Cmd) {
	if m.state == ViewRepoInfo {
		return m.startDownload()
	}
	id, ok := m.repoList.GetSelectedID()
	if !ok {
		return m, nil
	}
	return m.open(id, true)
}

func handleFilterKey(m Model) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.repoList.ActivateFilter()
	return m, nil
}

func handleReloadKey(m Model) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	return m.reload()
}

func handleEscKey(m Model) (Model, tea.Cmd) {
	if m.state == ViewRepoInfo {
		return m.navigateBack()
	}
	if m.repoList.GetFilterText() != "" {
		m.repoList.ClearFilter()
	}
	return m, nil
}

func handleCommandBarKey(m Model) (Model, tea.Cmd) {
	m.commandBar.Activate()
	return m, nil
}

func handleLogsKey(m Model) (Model, tea.Cmd) {
	m.logsView.Activate()
	return m, nil
}

func handleQuitKey(m Model) (Model, tea.Cmd) {
	logger.Log("UI: Exit")
	return m, tea.Quit
}

// openByName resolves a typed repository name the same way a list selection
// is resolved.
func (m Model) openByName(raw string, download bool) (Model, tea.Cmd) {
	id, err := common.ParseRepositoryID(raw)
	if err != nil {
		m.statusBar.SetMessage(common.UserMessage(err), true)
		return m, nil
	}
	return m.open(id, download)
}
