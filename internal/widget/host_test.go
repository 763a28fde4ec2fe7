package widget

import (
	"strings"
	"testing"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/surface"
)

// column builds n stacked buttons three rows tall, ten cells wide.
func column(n int, fired *[]string) []Widget {
	ws := make([]Widget, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		ws[i] = NewButton(id, strings.ToUpper(id), Rect{X: 5, Y: i * 4, W: 10, H: 3}, func() {
			*fired = append(*fired, id)
		})
	}
	return ws
}

func TestFocusWrapsBothWays(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFocus)
	h.SetBounds(40, 20)
	h.SetWidgets(column(3, &fired)...)
	if h.FocusIndex() != 0 {
		t.Fatalf("expected initial focus 0, got %d", h.FocusIndex())
	}
	h.Navigate(bus.Up)
	if h.FocusIndex() != 2 {
		t.Fatalf("expected up from 0 to wrap to 2, got %d", h.FocusIndex())
	}
	h.Navigate(bus.Down)
	if h.FocusIndex() != 0 {
		t.Fatalf("expected down from last to wrap to 0, got %d", h.FocusIndex())
	}
	h.Navigate(bus.Next)
	h.Navigate(bus.Next)
	h.Navigate(bus.Next)
	if h.FocusIndex() != 0 {
		t.Fatalf("expected next to wrap to 0, got %d", h.FocusIndex())
	}
}

func TestOnlyFocusedWidgetCarriesFlag(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFocus)
	ws := column(3, &fired)
	h.SetWidgets(ws...)
	h.Navigate(bus.Down)
	for i, w := range ws {
		want := i == 1
		if w.Focused() != want {
			t.Fatalf("widget %d focused=%v, want %v", i, w.Focused(), want)
		}
	}
	if ws[1].State() != Hover || ws[0].State() != Normal {
		t.Fatalf("expected focus to drive hover, got %v/%v", ws[1].State(), ws[0].State())
	}
}

func TestFocusActivateTriggersAndRestoresHover(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFocus)
	ws := column(2, &fired)
	h.SetWidgets(ws...)
	var seen []InteractionKind
	h.OnInteract(func(i Interaction) { seen = append(seen, i.Kind) })

	h.Navigate(bus.Down)
	h.Activate()

	if len(fired) != 1 || fired[0] != "b" {
		t.Fatalf("expected b fired, got %v", fired)
	}
	if ws[1].State() != Hover {
		t.Fatalf("expected hover after activation, got %v", ws[1].State())
	}
	if len(seen) != 2 || seen[0] != InteractNavigate || seen[1] != InteractActivate {
		t.Fatalf("unexpected interactions %v", seen)
	}
}

func TestFreeCursorIsClamped(t *testing.T) {
	h := NewHost("test", ModeFree)
	h.SetBounds(20, 10)
	h.PointerMove(500, -3)
	x, y := h.Cursor().Position()
	if x != 19 || y != 0 {
		t.Fatalf("expected clamp to (19,0), got (%d,%d)", x, y)
	}
	h.SetStep(4, 2)
	for i := 0; i < 10; i++ {
		h.Navigate(bus.Down)
		h.Navigate(bus.Right)
	}
	x, y = h.Cursor().Position()
	if x < 0 || x > 20 || y < 0 || y > 10 {
		t.Fatalf("cursor escaped bounds: (%d,%d)", x, y)
	}
	if y != 9 {
		t.Fatalf("expected bottom row 9, got %d", y)
	}
}

func TestFreeModeHitTestOnPointerUp(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFree)
	h.SetBounds(40, 20)
	ws := column(2, &fired)
	h.SetWidgets(ws...)

	h.PointerMove(6, 5)
	if h.Hovered() != ws[1] || ws[1].State() != Hover {
		t.Fatalf("expected second widget hovered")
	}
	h.PointerDown(6, 5)
	if ws[1].State() != Pressed {
		t.Fatalf("expected pressed state, got %v", ws[1].State())
	}
	h.PointerUp(6, 5)
	if len(fired) != 1 || fired[0] != "b" {
		t.Fatalf("expected b fired, got %v", fired)
	}
	if ws[1].State() != Hover {
		t.Fatalf("expected hover after release, got %v", ws[1].State())
	}

	h.PointerUp(30, 19)
	if len(fired) != 1 {
		t.Fatalf("expected release on empty space to do nothing, got %v", fired)
	}
}

func TestFreeModeSelectUsesCursor(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFree)
	h.SetBounds(40, 20)
	h.SetWidgets(column(2, &fired)...)
	h.PointerMove(7, 1)
	h.Activate()
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("expected a fired, got %v", fired)
	}
}

func TestToggleSnapsToNearestAndHidesCursor(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFree)
	h.SetBounds(40, 20)
	ws := column(3, &fired)
	h.SetWidgets(ws...)
	h.PointerMove(30, 9)
	toggles := 0
	h.OnInteract(func(i Interaction) {
		if i.Kind == InteractModeToggle {
			toggles++
		}
	})

	h.ToggleMode()
	if h.Mode() != ModeFocus {
		t.Fatalf("expected focus mode")
	}
	if h.FocusIndex() != 2 {
		t.Fatalf("expected nearest widget 2, got %d", h.FocusIndex())
	}
	if h.Cursor().Visible() {
		t.Fatalf("expected cursor hidden in focus mode")
	}

	h.ToggleMode()
	if h.Mode() != ModeFree || !h.Cursor().Visible() {
		t.Fatalf("expected free mode with visible cursor")
	}
	for i, w := range ws {
		if w.Focused() {
			t.Fatalf("widget %d kept focus after leaving focus mode", i)
		}
	}
	if toggles != 2 {
		t.Fatalf("expected two toggle interactions, got %d", toggles)
	}
}

func TestSetModeSameModeIsNoop(t *testing.T) {
	h := NewHost("test", ModeFocus)
	calls := 0
	h.OnInteract(func(Interaction) { calls++ })
	h.SetMode(ModeFocus)
	if calls != 0 {
		t.Fatalf("expected no interaction, got %d", calls)
	}
}

func TestFocusModeIgnoresPointer(t *testing.T) {
	var fired []string
	h := NewHost("test", ModeFocus)
	h.SetBounds(40, 20)
	h.SetWidgets(column(2, &fired)...)
	h.PointerUp(6, 5)
	if len(fired) != 0 {
		t.Fatalf("expected pointer ignored in focus mode, got %v", fired)
	}
}

func TestGridColumnsMoveByRow(t *testing.T) {
	var fired []string
	h := NewHost("grid", ModeFocus)
	h.SetColumns(2)
	h.SetWidgets(column(4, &fired)...)
	h.Navigate(bus.Down)
	if h.FocusIndex() != 2 {
		t.Fatalf("expected row step to 2, got %d", h.FocusIndex())
	}
	h.Navigate(bus.Down)
	if h.FocusIndex() != 0 {
		t.Fatalf("expected wrap to 0, got %d", h.FocusIndex())
	}
}

func TestActivateWidgetSurvivesListReplacement(t *testing.T) {
	h := NewHost("test", ModeFocus)
	var replaced bool
	b := NewButton("x", "X", Rect{W: 4, H: 3}, nil)
	b.SetOnSelect(func() {
		replaced = true
		h.SetWidgets()
	})
	h.SetWidgets(b)
	h.ActivateWidget(b)
	if !replaced {
		t.Fatalf("expected trigger to run")
	}
	if b.State() != Pressed {
		t.Fatalf("expected detached widget left untouched, got %v", b.State())
	}
}

func TestRenderersDrawLabelsAndMarkers(t *testing.T) {
	c := surface.New(20, 5)
	b := NewButton("ok", "OK", Rect{X: 3, Y: 0, W: 8, H: 3}, nil)
	b.SetFocused(true)
	RenderButton(c, b, Styles{})
	lines := c.Lines()
	if !strings.Contains(lines[1], "OK") || lines[1][1] != 0xe2 {
		t.Fatalf("expected label and marker on middle row, got %q", lines[1])
	}

	item := NewButton("long", "a very long label", Rect{X: 0, Y: 4, W: 8, H: 1}, nil)
	RenderItem(c, item, Styles{})
	row := c.Lines()[4]
	if !strings.Contains(row, "…") {
		t.Fatalf("expected truncated label, got %q", row)
	}

	cur := NewCursor(20, 5)
	cur.MoveTo(19, 4)
	RenderCursor(c, cur, Styles{})
	if c.At(19, 4) == '◆' {
		t.Fatalf("expected hidden cursor not drawn")
	}
	cur.Show()
	RenderCursor(c, cur, Styles{})
	if c.At(19, 4) != '◆' {
		t.Fatalf("expected cursor drawn")
	}
}
