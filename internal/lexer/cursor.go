package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

const utf8RuneSelf = 0x80

// Cursor walks the source bytes while tracking 1-based line and column
// positions. Columns count runes, not bytes; \n, \r, and \r\n each terminate
// a line.
type Cursor struct {
	data  []byte
	off   uint32
	limit uint32

	line uint32
	col  uint32

	// Position of the most recently consumed rune; used for inclusive
	// token end locations.
	prevLine uint32
	prevCol  uint32
}

// NewCursor creates a cursor over data positioned at line 1, column 1.
func NewCursor(data []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(data))
	if err != nil {
		panic(fmt.Errorf("lexer: source length overflow: %w", err))
	}
	return Cursor{
		data:     data,
		limit:    limit,
		line:     1,
		col:      1,
		prevLine: 1,
		prevCol:  1,
	}
}

// EOF reports whether the cursor has reached the end of the source.
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.data[c.off]
}

// PeekAt returns the byte n positions ahead, or 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.data[c.off+n]
}

// Bump consumes one byte (two for \r\n) and returns the first byte read.
// Line and column bookkeeping happens here and nowhere else.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.data[c.off]
	c.off++

	switch {
	case b == '\n':
		c.prevLine, c.prevCol = c.line, c.col
		c.line++
		c.col = 1
	case b == '\r':
		c.prevLine, c.prevCol = c.line, c.col
		if !c.EOF() && c.data[c.off] == '\n' {
			c.off++
		}
		c.line++
		c.col = 1
	case b&0xC0 == 0x80:
		// UTF-8 continuation byte: still inside the rune consumed by the
		// leading byte, no column movement.
	default:
		c.prevLine, c.prevCol = c.line, c.col
		c.col++
	}
	return b
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.data[c.off] == b {
		c.Bump()
		return true
	}
	return false
}

// Pos returns the line and column of the next rune to read.
func (c *Cursor) Pos() (line, col uint32) {
	return c.line, c.col
}

// PrevPos returns the line and column of the last consumed rune.
func (c *Cursor) PrevPos() (line, col uint32) {
	return c.prevLine, c.prevCol
}

// Offset returns the byte offset of the next read.
func (c *Cursor) Offset() uint32 {
	return c.off
}

// Slice returns the raw bytes in [from, to).
func (c *Cursor) Slice(from, to uint32) []byte {
	return c.data[from:to]
}
