package surface

import (
	"strings"
	"testing"
)

func TestTextClipsAtRightEdge(t *testing.T) {
	c := New(5, 1)
	n := c.Text(2, 0, "hello", nil)
	if n != 3 {
		t.Fatalf("expected 3 columns written, got %d", n)
	}
	if got := c.Lines()[0]; got != "  hel" {
		t.Fatalf("expected clipped row, got %q", got)
	}
}

func TestTextIgnoresRowsOutsideCanvas(t *testing.T) {
	c := New(4, 2)
	if n := c.Text(0, 5, "x", nil); n != 0 {
		t.Fatalf("expected nothing written, got %d", n)
	}
	if n := c.Text(-2, 0, "abcd", nil); n != 2 {
		t.Fatalf("expected 2 visible columns, got %d", n)
	}
	if got := c.Lines()[0]; got != "cd  " {
		t.Fatalf("expected left clip, got %q", got)
	}
}

func TestBoxDrawsCorners(t *testing.T) {
	c := New(4, 3)
	c.Box(Rect{W: 4, H: 3}, nil)
	want := []string{"┌──┐", "│  │", "└──┘"}
	got := c.Lines()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBlitStripsEscapesAndTruncates(t *testing.T) {
	c := New(6, 2)
	c.Blit(Rect{X: 1, Y: 0, W: 3, H: 1}, "\x1b[31mred text\x1b[0m\nsecond", nil)
	lines := c.Lines()
	if lines[0] != " red  " {
		t.Fatalf("expected truncated plain text, got %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "" {
		t.Fatalf("expected second line clipped by rect height, got %q", lines[1])
	}
}

func TestRectContainsAndCenter(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 4, H: 3}
	if !r.Contains(2, 1) || !r.Contains(5, 3) {
		t.Fatalf("expected edges inside")
	}
	if r.Contains(6, 1) || r.Contains(2, 4) {
		t.Fatalf("expected far edges outside")
	}
	x, y := r.Center()
	if x != 4 || y != 2 {
		t.Fatalf("expected center (4,2), got (%d,%d)", x, y)
	}
}

func TestResizeBlanksGrid(t *testing.T) {
	c := New(3, 1)
	c.Text(0, 0, "abc", nil)
	c.Resize(2, 2)
	if c.Width() != 2 || c.Height() != 2 {
		t.Fatalf("expected 2x2, got %dx%d", c.Width(), c.Height())
	}
	if got := c.Render(); got != "  \n  " {
		t.Fatalf("expected blank render, got %q", got)
	}
}
