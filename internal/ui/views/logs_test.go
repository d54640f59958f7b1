package views

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/toolmanager/internal/logger"
)

func TestLogsView_ActivateScrollsToNewest(t *testing.T) {
	for i := 0; i < 50; i++ {
		logger.Log("logs view entry %d", i)
	}

	view := NewLogsView()
	view.SetSize(100, 20)
	view.Activate()

	if !view.IsActive() {
		t.Fatal("expected view to be active")
	}
	if view.Offset() != view.maxOffset() {
		t.Errorf("expected offset %d, got %d", view.maxOffset(), view.Offset())
	}
	if !strings.Contains(view.View(), "logs view entry 49") {
		t.Error("expected newest entry to be visible")
	}
}

func TestLogsView_ScrollBounds(t *testing.T) {
	for i := 0; i < 30; i++ {
		logger.Log("bounded entry %d", i)
	}

	view := NewLogsView()
	view.SetSize(100, 20)
	view.Activate()

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if view.Offset() != 0 {
		t.Errorf("expected offset 0 after g, got %d", view.Offset())
	}

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if view.Offset() != 0 {
		t.Errorf("expected offset to stay at 0, got %d", view.Offset())
	}

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if view.Offset() != view.maxOffset() {
		t.Errorf("expected offset to stay at the bottom, got %d", view.Offset())
	}
}

func TestLogsView_InactiveRendersNothing(t *testing.T) {
	view := NewLogsView()
	if view.View() != "" {
		t.Error("expected empty view while inactive")
	}
	if cmd := view.Update(tea.KeyMsg{Type: tea.KeyDown}); cmd != nil {
		t.Error("expected no command while inactive")
	}
}

func TestLogsView_ShowsFirstLineOfMultilineEntries(t *testing.T) {
	logger.LogHTTP("--> GET https://example.test/\nHeaders:\n  Accept: */*")

	view := NewLogsView()
	view.SetSize(200, 200)
	view.Activate()

	out := view.View()
	if !strings.Contains(out, fmt.Sprintf("[%s] --> GET https://example.test/", logger.KindHTTP)) {
		t.Error("expected the request line")
	}
	if strings.Contains(out, "Accept: */*") {
		t.Error("expected header lines to be hidden")
	}
}
