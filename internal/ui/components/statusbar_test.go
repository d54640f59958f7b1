package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusBar_BadgeFollowsKind(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(80)

	bar.SetMessage("Loaded 12 repositories", false)
	out := bar.View()
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "Loaded 12 repositories") {
		t.Errorf("expected info badge and message, got %q", out)
	}

	bar.SetMessage("Download failed", true)
	out = bar.View()
	if !strings.Contains(out, "ERROR") || strings.Contains(out, "INFO") {
		t.Errorf("expected only the error badge, got %q", out)
	}
	if msg, isErr := bar.Message(); msg != "Download failed" || !isErr {
		t.Errorf("unexpected message %q (error=%v)", msg, isErr)
	}
}

func TestStatusBar_FitsWidth(t *testing.T) {
	bar := NewStatusBar()
	bar.SetWidth(30)
	bar.SetMessage(strings.Repeat("requirements ", 10), false)

	out := bar.View()
	if w := lipgloss.Width(out); w != 30 {
		t.Errorf("expected width 30, got %d", w)
	}
	if !strings.Contains(out, "...") {
		t.Error("expected a truncated message")
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Sparta", 10, "Sparta"},
		{"Evil-Droid", 7, "Evil..."},
		{"Evil-Droid", 2, "Ev"},
		{"Evil-Droid", 0, ""},
	}
	for _, tt := range tests {
		if got := ellipsize(tt.in, tt.n); got != tt.want {
			t.Errorf("ellipsize(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
