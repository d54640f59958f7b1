package components

import (
	"strings"
	"testing"
)

func TestTopBar_ShowsContext(t *testing.T) {
	bar := NewTopBar("UndeadSec")
	bar.SetWidth(140)
	bar.SetShortcuts([]string{"<enter> More", "<d> Download", "<q> Exit"})

	out := bar.View()
	for _, want := range []string{"UndeadSec Tool Manager", "loading...", "<d>", "Download"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected top bar to contain %q", want)
		}
	}

	bar.SetRepoCount(12)
	bar.SetContext("ShellPop")
	out = bar.View()
	if !strings.Contains(out, "12") || !strings.Contains(out, "ShellPop") {
		t.Error("expected repo count and current repo")
	}
}
