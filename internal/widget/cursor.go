package widget

// Cursor is the on-surface pointer a Host draws in free mode. Its position
// always stays inside the bounds it was given.
type Cursor struct {
	x, y          int
	width, height int
	visible       bool
}

// NewCursor returns a hidden cursor at the origin of a w×h area.
func NewCursor(w, h int) *Cursor {
	c := &Cursor{}
	c.SetBounds(w, h)
	return c
}

// Position returns the cursor cell.
func (c *Cursor) Position() (int, int) {
	return c.x, c.y
}

func (c *Cursor) Visible() bool { return c.visible }
func (c *Cursor) Show()         { c.visible = true }
func (c *Cursor) Hide()         { c.visible = false }

// SetBounds changes the clamp area and re-clamps the position.
func (c *Cursor) SetBounds(w, h int) {
	c.width, c.height = w, h
	c.MoveTo(c.x, c.y)
}

// MoveTo places the cursor, clamped to the bounds.
func (c *Cursor) MoveTo(x, y int) {
	c.x = clamp(x, 0, c.width-1)
	c.y = clamp(y, 0, c.height-1)
}

// MoveBy shifts the cursor, clamped to the bounds.
func (c *Cursor) MoveBy(dx, dy int) {
	c.MoveTo(c.x+dx, c.y+dy)
}

// Center moves the cursor to the middle of its bounds.
func (c *Cursor) Center() {
	c.MoveTo(c.width/2, c.height/2)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
