package turing

import "strings"

// Tape is an unbounded bit tape. Only the cells between the leftmost and
// rightmost positions ever supplied or written are stored; every other cell
// reads as blank (false).
type Tape struct {
	cells  []bool
	offset int // index = position + offset; never decreases
}

// NewTape returns a Tape holding a copy of cells, with cells[0] at position 0.
func NewTape(cells []bool) *Tape {
	return &Tape{cells: append([]bool(nil), cells...)}
}

// Read returns the value at pos.
func (t *Tape) Read(pos int) bool {
	i := pos + t.offset
	if i < 0 || i >= len(t.cells) {
		return false
	}
	return t.cells[i]
}

// Write stores v at pos, growing the stored window as needed.
func (t *Tape) Write(pos int, v bool) {
	i := pos + t.offset
	if i < 0 {
		grown := make([]bool, -i+len(t.cells))
		copy(grown[-i:], t.cells)
		t.cells = grown
		t.offset -= i
		i = 0
	}
	if i >= len(t.cells) {
		t.cells = append(t.cells, make([]bool, i-len(t.cells)+1)...)
	}
	t.cells[i] = v
}

// Cursor returns the index of pos within the string returned by String.
func (t *Tape) Cursor(pos int) int { return pos + t.offset }

// Offset returns the amount added to a position to index the stored cells.
func (t *Tape) Offset() int { return t.offset }

// Len returns the number of stored cells.
func (t *Tape) Len() int { return len(t.cells) }

// Cells returns a copy of the stored cells.
func (t *Tape) Cells() []bool { return append([]bool(nil), t.cells...) }

// String returns the stored cells as a string of 0s and 1s.
func (t *Tape) String() string {
	var b strings.Builder
	b.Grow(len(t.cells))
	for _, v := range t.cells {
		b.WriteByte(bit(v))
	}
	return b.String()
}
