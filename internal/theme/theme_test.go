package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("LIGHT").Name; got != "light" {
		t.Fatalf("expected light, got %q", got)
	}
	if got := ByName("sepia").Name; got != Default().Name {
		t.Fatalf("expected default for unknown theme, got %q", got)
	}
}

func TestEverySetFillsWidgetStyles(t *testing.T) {
	for _, name := range Names() {
		ws := ByName(name).Widgets()
		if ws.Normal == nil || ws.Focus == nil || ws.Cursor == nil || ws.Indicator == nil {
			t.Fatalf("theme %s left widget styles unset", name)
		}
	}
	if len(Names()) != 3 {
		t.Fatalf("expected three themes, got %v", Names())
	}
}

func TestPaletteColoursReachStyles(t *testing.T) {
	dark := ByName("dark")
	if got := dark.Title.GetForeground(); got != lipgloss.Color("33") {
		t.Fatalf("expected accent 33 on title, got %v", got)
	}
	if got := dark.Taskbar.GetBackground(); got != lipgloss.Color("236") {
		t.Fatalf("expected bar 236 behind taskbar, got %v", got)
	}
	if got := ByName("contrast").Focus.GetBackground(); got != lipgloss.Color("21") {
		t.Fatalf("expected contrast selection 21, got %v", got)
	}
}
