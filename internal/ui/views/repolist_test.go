package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johanforsgren/toolmanager/internal/domain"
)

func testEntries() []domain.CatalogEntry {
	repos := []domain.Repository{
		{Name: "ShellPop", Description: "Pop shells like a master", Requirements: []string{"argcomplete"}},
		{Name: "Step1", Description: "Reverse shell generator", Requirements: []string{}},
		{Name: "BadMod", Description: "Detect website modules", Requirements: []string{"requests", "bs4"}},
	}
	entries := make([]domain.CatalogEntry, len(repos))
	for i, r := range repos {
		entries[i] = domain.CatalogEntry{ID: r.ID(), Repository: r}
	}
	return entries
}

func TestRepoList_SetEntriesKeepsOrder(t *testing.T) {
	view := NewRepoListView()
	view.SetSize(120, 40)
	view.SetEntries(testEntries())

	visible := view.Visible()
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible entries, got %d", len(visible))
	}
	for i, want := range []string{"ShellPop", "Step1", "BadMod"} {
		if visible[i].Repository.Name != want {
			t.Errorf("entry %d = %s, want %s", i, visible[i].Repository.Name, want)
		}
	}

	id, ok := view.GetSelectedID()
	if !ok || id != "ShellPop" {
		t.Errorf("expected ShellPop under the cursor, got %q (%v)", id, ok)
	}
}

func TestRepoList_GetSelectedIDEmpty(t *testing.T) {
	view := NewRepoListView()
	if _, ok := view.GetSelectedID(); ok {
		t.Error("expected no selection on an empty list")
	}
	if !strings.Contains(view.View(), "No repositories found") {
		t.Error("expected empty placeholder")
	}
}

func TestRepoList_FuzzyFilterKeepsCatalogOrder(t *testing.T) {
	view := NewRepoListView()
	view.SetSize(120, 40)
	view.SetEntries(testEntries())

	view.ActivateFilter()
	for _, r := range "shell" {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	view.ApplyFilter()

	visible := view.Visible()
	if len(visible) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(visible))
	}
	if visible[0].Repository.Name != "ShellPop" || visible[1].Repository.Name != "Step1" {
		t.Errorf("expected catalog order, got %s, %s", visible[0].Repository.Name, visible[1].Repository.Name)
	}
}

func TestRepoList_ClearFilter(t *testing.T) {
	view := NewRepoListView()
	view.SetEntries(testEntries())
	view.ActivateFilter()
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzzz")})

	if len(view.Visible()) != 0 {
		t.Fatalf("expected no matches, got %d", len(view.Visible()))
	}
	if _, ok := view.GetSelectedID(); ok {
		t.Error("expected no selection when nothing matches")
	}

	view.ClearFilter()
	if view.IsFiltering() {
		t.Error("expected filtering to stop")
	}
	if len(view.Visible()) != 3 {
		t.Errorf("expected all entries back, got %d", len(view.Visible()))
	}
}

func TestRepoList_RequirementCountColumn(t *testing.T) {
	view := NewRepoListView()
	view.SetSize(120, 40)
	view.SetEntries(testEntries())

	rows := view.entriesToRows(view.Visible())
	if rows[2][2] != "2" {
		t.Errorf("expected BadMod to list 2 requirements, got %s", rows[2][2])
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer description", 10, "a longe..."},
		{"abcdef", 3, "abc"},
		{"héllo wörld", 8, "héllo..."},
		{"anything", 0, "anything"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
