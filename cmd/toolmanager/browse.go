package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/toolmanager/internal/ui"
)

type BrowseCmd struct{}

func (c *BrowseCmd) Run(rc *runContext) error {
	ctx, cancel := context.WithCancel(rc.ctx)
	defer cancel()

	model := ui.NewModel(ctx, rc.catalog, rc.selection, rc.provider, ui.Options{
		Account:     rc.endpoints.Account,
		Destination: rc.cfg.Destination,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
