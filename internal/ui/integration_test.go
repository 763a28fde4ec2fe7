package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/mizu/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

func TestBootMenuDesktopFlow(t *testing.T) {
	clock := timer.NewManual()
	sh := newShell(t, clock, 2)
	h := NewHarness(NewModel(sh.options()), clock)
	h.Init()

	if view := h.View(); !strings.Contains(view, "Initializing kernel...") {
		t.Fatalf("expected boot status, view =\n%s", view)
	}
	h.Advance(2600 * time.Millisecond)
	if got := sh.kernel.Scenes.CurrentName(); got != "menu" {
		t.Fatalf("expected menu after boot, got %q", got)
	}
	if view := h.View(); !strings.Contains(view, "Desktop (2)") {
		t.Fatalf("expected countdown label, view =\n%s", view)
	}

	h.Advance(2 * time.Second)
	if got := sh.kernel.Scenes.CurrentName(); got != "app" {
		t.Fatalf("expected countdown to open the desktop, got %q", got)
	}
	view := h.View()
	if !strings.Contains(view, "[Menu]") || !strings.Contains(view, "Notes") {
		t.Fatalf("expected desktop with taskbar and icons, view =\n%s", view)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	if view := h.View(); !strings.Contains(view, "hello") {
		t.Fatalf("expected typed text in notes window, view =\n%s", view)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if got := sh.kernel.Scenes.CurrentName(); got != "menu" {
		t.Fatalf("expected esc twice to reach the menu, got %q", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.Model().Quitting() {
		t.Fatalf("expected ctrl+c to quit")
	}
}

func TestMouseClickOnTaskbarMenu(t *testing.T) {
	clock := timer.NewManual()
	sh := newShell(t, clock, 0)
	opts := sh.options()
	opts.Width, opts.Height = 80, 25
	h := NewHarness(NewModel(opts), clock)
	h.Init()
	sh.kernel.ChangeScene("menu", nil)
	sh.kernel.ChangeScene("app", nil)

	bottom := h.Model().Canvas().Height() - 1
	h.Send(tea.MouseMsg{X: 2, Y: bottom, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := sh.kernel.Scenes.CurrentName(); got != "menu" {
		t.Fatalf("expected [Menu] click to open the menu, got %q", got)
	}
}

func TestMouseDisabledIgnoresClicks(t *testing.T) {
	clock := timer.NewManual()
	sh := newShell(t, clock, 0)
	opts := sh.options()
	opts.Mouse = false
	opts.Width, opts.Height = 80, 25
	h := NewHarness(NewModel(opts), clock)
	h.Init()
	sh.kernel.ChangeScene("menu", nil)
	sh.kernel.ChangeScene("app", nil)

	bottom := h.Model().Canvas().Height() - 1
	h.Send(tea.MouseMsg{X: 2, Y: bottom, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := sh.kernel.Scenes.CurrentName(); got != "app" {
		t.Fatalf("expected click ignored, got %q", got)
	}
}

func TestMouseOnFooterRowIgnored(t *testing.T) {
	clock := timer.NewManual()
	sh := newShell(t, clock, 0)
	opts := sh.options()
	opts.Width, opts.Height = 80, 25
	h := NewHarness(NewModel(opts), clock)
	h.Init()
	sh.kernel.ChangeScene("menu", nil)
	sh.kernel.ChangeScene("app", nil)
	h.Send(tea.MouseMsg{X: 2, Y: 24, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := sh.kernel.Scenes.CurrentName(); got != "app" {
		t.Fatalf("expected footer click ignored, got %q", got)
	}
}
