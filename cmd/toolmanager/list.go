package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

type ListCmd struct {
	Requirements bool `short:"r" help:"Print each repository's requirements below it."`
}

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)

func (c *ListCmd) Run(rc *runContext) error {
	entries, err := rc.catalog.List(rc.ctx)
	if err != nil {
		return err
	}

	rows := lo.Map(entries, func(e domain.CatalogEntry, _ int) []string {
		return []string{e.Repository.Name, e.Repository.Description, strconv.Itoa(len(e.Repository.Requirements))}
	})

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("NAME", "DESCRIPTION", "REQS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().PaddingRight(1)
		})
	fmt.Println(t)

	if c.Requirements {
		withReqs := lo.Filter(entries, func(e domain.CatalogEntry, _ int) bool {
			return len(e.Repository.Requirements) > 0
		})
		for _, e := range withReqs {
			fmt.Println()
			fmt.Println(headerStyle.Render(e.Repository.Name))
			for _, req := range e.Repository.Requirements {
				fmt.Println("  " + req)
			}
		}
	}

	fmt.Printf("\n%d repositories\n", len(entries))
	return nil
}
