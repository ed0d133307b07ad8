// Package piece describes tetromino geometry: the seven canonical shapes,
// their pure translate and rotate transforms, and a seedable spawner.
package piece

import "math"

// Cell is a grid coordinate, X is the column and Y the row counted up from
// the bottom of the board.
type Cell struct {
	X, Y int
}

// Pivot is the rotation center of a piece. Square-ish shapes rotate about a
// point between cells, so the coordinates may be half-integers.
type Pivot struct {
	X, Y float64
}

// Piece is an immutable placement of one tetromino. Transforms return a new
// value and leave the receiver untouched.
type Piece struct {
	cells [4]Cell
	pivot Pivot
	kind  Kind
}

// New builds the canonical piece for kind, anchored at the origin.
// It panics if kind is not one of the seven shapes.
func New(kind Kind) Piece {
	s := mustShape(kind)
	return Piece{
		cells: s.cells,
		pivot: s.pivot,
		kind:  kind,
	}
}

// Kind returns the shape the piece was built from.
func (p Piece) Kind() Kind { return p.kind }

// Pivot returns the point the piece rotates about.
func (p Piece) Pivot() Pivot { return p.pivot }

// Cells returns the four cells the piece covers.
func (p Piece) Cells() [4]Cell { return p.cells }

// Translate shifts every cell and the pivot by (dx, dy).
func (p Piece) Translate(dx, dy int) Piece {
	out := p
	for i := range out.cells {
		out.cells[i].X += dx
		out.cells[i].Y += dy
	}
	out.pivot.X += float64(dx)
	out.pivot.Y += float64(dy)
	return out
}

// Rotate turns the piece 90 degrees counter-clockwise about its pivot.
func (p Piece) Rotate() Piece {
	out := p
	px, py := p.pivot.X, p.pivot.Y
	for i, c := range p.cells {
		out.cells[i] = Cell{
			X: snap(py - float64(c.Y) + px),
			Y: snap(float64(c.X) - px + py),
		}
	}
	return out
}

// RotateCW turns the piece 90 degrees clockwise, i.e. three CCW turns.
func (p Piece) RotateCW() Piece {
	return p.Rotate().Rotate().Rotate()
}

// SameCells reports whether both pieces cover the same set of cells,
// regardless of cell order, pivot or kind.
func (p Piece) SameCells(other Piece) bool {
	for _, c := range p.cells {
		if !other.Covers(c) {
			return false
		}
	}
	for _, c := range other.cells {
		if !p.Covers(c) {
			return false
		}
	}
	return true
}

// Covers reports whether c is one of the piece's cells.
func (p Piece) Covers(c Cell) bool {
	for _, own := range p.cells {
		if own == c {
			return true
		}
	}
	return false
}

// snap rounds half toward +Inf. math.Round rounds half away from zero, which
// would make a rotation near column 0 land differently than one elsewhere.
func snap(v float64) int {
	return int(math.Floor(v + 0.5))
}
