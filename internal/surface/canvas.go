// Package surface provides the cell grid that scenes and widgets draw onto.
// The kernel only passes the surface around; scenes own what goes on it.
package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the middle cell of r.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

type cell struct {
	ch    rune
	style *lipgloss.Style
	cont  bool
}

// Canvas is a fixed-size grid of styled runes.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// New allocates a blank canvas.
func New(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas area as a Rect anchored at the origin.
func (c *Canvas) Bounds() Rect {
	return Rect{W: c.width, H: c.height}
}

// Resize changes the dimensions and blanks the grid.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	c.cells = make([]cell, width*height)
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0, false
	}
	return y*c.width + x, true
}

// Set writes one rune. Out of range writes are dropped.
func (c *Canvas) Set(x, y int, r rune, style *lipgloss.Style) {
	if i, ok := c.index(x, y); ok {
		c.cells[i] = cell{ch: r, style: style}
	}
}

// At returns the rune stored at (x, y).
func (c *Canvas) At(x, y int) rune {
	if i, ok := c.index(x, y); ok {
		return c.cells[i].ch
	}
	return 0
}

// Text writes s starting at (x, y), clipped to the row, and returns the
// number of columns consumed.
func (c *Canvas) Text(x, y int, s string, style *lipgloss.Style) int {
	if y < 0 || y >= c.height {
		return 0
	}
	col := x
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		if col+w > c.width {
			break
		}
		if col >= 0 {
			c.Set(col, y, r, style)
			if w == 2 {
				if i, ok := c.index(col+1, y); ok {
					c.cells[i] = cell{cont: true, style: style}
				}
			}
		}
		col += w
	}
	start := x
	if start < 0 {
		start = 0
	}
	if col < start {
		return 0
	}
	return col - start
}

// TextCenter writes s centred on row y.
func (c *Canvas) TextCenter(y int, s string, style *lipgloss.Style) {
	x := (c.width - ansi.StringWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	c.Text(x, y, s, style)
}

// Fill paints r with ch.
func (c *Canvas) Fill(r Rect, ch rune, style *lipgloss.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.Set(x, y, ch, style)
		}
	}
}

// Box draws a single line border along the edge of r.
func (c *Canvas) Box(r Rect, style *lipgloss.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		c.Set(x, r.Y, '─', style)
		c.Set(x, bottom, '─', style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.Set(r.X, y, '│', style)
		c.Set(right, y, '│', style)
	}
	c.Set(r.X, r.Y, '┌', style)
	c.Set(right, r.Y, '┐', style)
	c.Set(r.X, bottom, '└', style)
	c.Set(right, bottom, '┘', style)
}

// Blit copies a multi-line block into r, dropping escape sequences and
// anything that does not fit.
func (c *Canvas) Blit(r Rect, block string, style *lipgloss.Style) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if i >= r.H {
			break
		}
		plain := ansi.Truncate(ansi.Strip(line), r.W, "")
		c.Text(r.X, r.Y+i, plain, style)
	}
}

// Render serialises the grid, applying styles to runs of equal style.
func (c *Canvas) Render() string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current != nil {
				out.WriteString(current.Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return out.String()
}

// Lines returns the grid without styling, one string per row.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b strings.Builder
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			if cl.cont {
				continue
			}
			b.WriteRune(cl.ch)
		}
		lines[y] = b.String()
	}
	return lines
}
