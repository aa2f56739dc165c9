package viewstate

// Cursor is a position within n items that never leaves [0, n).
type Cursor struct {
	pos int
	n   int
}

// NewCursor starts at the first of n items.
func NewCursor(n int) *Cursor {
	return &Cursor{n: max(n, 0)}
}

// Pos returns the current index.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of items.
func (c *Cursor) Len() int { return c.n }

// Next moves forward and reports whether it moved.
func (c *Cursor) Next() bool { return c.Move(1) }

// Prev moves back and reports whether it moved.
func (c *Cursor) Prev() bool { return c.Move(-1) }

// Move shifts by delta, clamped to the bounds.
func (c *Cursor) Move(delta int) bool {
	if c.n == 0 {
		return false
	}
	next := min(max(c.pos+delta, 0), c.n-1)
	moved := next != c.pos
	c.pos = next
	return moved
}

// First reports whether the cursor is on the first item.
func (c *Cursor) First() bool { return c.pos == 0 }

// Last reports whether the cursor is on the last item.
func (c *Cursor) Last() bool { return c.n == 0 || c.pos == c.n-1 }

// Resize changes the item count, pulling the cursor back inside.
func (c *Cursor) Resize(n int) {
	c.n = max(n, 0)
	c.pos = min(c.pos, max(c.n-1, 0))
}
