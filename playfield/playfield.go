// Package playfield holds the occupancy grid of the board, including the
// overflow rows above the visible area, and the row clearing logic.
package playfield

import (
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/tetra/piece"
	"github.com/zyedidia/generic/mapset"
)

// Playfield is the single source of truth for which cells are occupied.
// It is not safe for concurrent use.
type Playfield struct {
	columns int
	rows    int
	height  int

	// grid is indexed [column][row]
	grid   [][]*Occupant
	index  *intmap.Map[OccupantID, piece.Cell]
	nextID OccupantID
}

// New allocates an empty playfield with columns × (rows+overflow) cells.
func New(columns, rows, overflow int) *Playfield {
	if columns <= 0 || rows <= 0 || overflow < 0 {
		panic(fmt.Sprintf("invalid playfield size %dx%d+%d", columns, rows, overflow))
	}

	height := rows + overflow
	grid := make([][]*Occupant, columns)
	for col := range grid {
		grid[col] = make([]*Occupant, height)
	}

	return &Playfield{
		columns: columns,
		rows:    rows,
		height:  height,
		grid:    grid,
		index:   intmap.New[OccupantID, piece.Cell](columns * rows),
	}
}

// Columns returns the board width.
func (f *Playfield) Columns() int { return f.columns }

// Rows returns the visible board height.
func (f *Playfield) Rows() int { return f.rows }

// Height returns the visible height plus the overflow rows.
func (f *Playfield) Height() int { return f.height }

// Len returns the number of occupied cells.
func (f *Playfield) Len() int { return f.index.Len() }

// At returns the occupant at (col, row), or nil if the cell is empty or
// outside the grid.
func (f *Playfield) At(col, row int) *Occupant {
	if !f.inGrid(piece.Cell{X: col, Y: row}) {
		return nil
	}
	return f.grid[col][row]
}

func (f *Playfield) inGrid(c piece.Cell) bool {
	return c.X >= 0 && c.X < f.columns && c.Y >= 0 && c.Y < f.height
}

// Collides reports whether any cell of p is below the floor, beside the walls
// or already occupied. Rows above the visible board are legal so a piece can
// exist there before the game is over; cells past the overflow rows have no
// storage and count as colliding.
func (f *Playfield) Collides(p piece.Piece) bool {
	for _, c := range p.Cells() {
		if c.Y < 0 || c.X < 0 || c.X >= f.columns || c.Y >= f.height {
			return true
		}
		if f.grid[c.X][c.Y] != nil {
			return true
		}
	}
	return false
}

// ClearCells detaches the occupants at p's cells and returns them in cell
// order. The caller owns them until they are written back.
func (f *Playfield) ClearCells(p piece.Piece) [4]*Occupant {
	var detached [4]*Occupant
	for i, c := range p.Cells() {
		if !f.inGrid(c) {
			continue
		}
		o := f.grid[c.X][c.Y]
		if o == nil {
			continue
		}
		f.grid[c.X][c.Y] = nil
		f.index.Del(o.ID)
		detached[i] = o
	}
	return detached
}

// WriteCells attaches occupants to p's cells, pairing them by position, and
// moves each occupant's visual position to the center of its cell.
func (f *Playfield) WriteCells(p piece.Piece, occupants [4]*Occupant) {
	for i, c := range p.Cells() {
		o := occupants[i]
		if o == nil {
			continue
		}
		if !f.inGrid(c) {
			panic(fmt.Sprintf("write outside playfield at %v", c))
		}
		if prev := f.grid[c.X][c.Y]; prev != nil && prev != o {
			panic(fmt.Sprintf("cell %v already holds occupant %d", c, prev.ID))
		}
		o.X = float64(c.X) + 0.5
		o.Y = float64(c.Y) + 0.5
		f.grid[c.X][c.Y] = o
		f.index.Put(o.ID, c)
	}
}

// Place mints fresh occupants for p and writes them. handles, if given, are
// attached to the new occupants in cell order.
func (f *Playfield) Place(p piece.Piece, handles ...any) [4]*Occupant {
	var occupants [4]*Occupant
	for i := range occupants {
		f.nextID++
		o := &Occupant{ID: f.nextID, Kind: p.Kind()}
		if i < len(handles) {
			o.Handle = handles[i]
		}
		occupants[i] = o
	}
	f.WriteCells(p, occupants)
	return occupants
}

// Locate returns the cell currently holding the occupant with id.
func (f *Playfield) Locate(id OccupantID) (piece.Cell, bool) {
	return f.index.Get(id)
}

// IsRowFull reports whether every column of row is occupied.
func (f *Playfield) IsRowFull(row int) bool {
	if row < 0 || row >= f.height {
		return false
	}
	for col := 0; col < f.columns; col++ {
		if f.grid[col][row] == nil {
			return false
		}
	}
	return true
}

// FullRows returns the full rows of the visible board, bottom first.
func (f *Playfield) FullRows() []int {
	var full []int
	for row := 0; row < f.rows; row++ {
		if f.IsRowFull(row) {
			full = append(full, row)
		}
	}
	return full
}

// ClearAndCompactRows removes every occupant on the given rows and, column by
// column, stacks the survivors down from row 0 in their original order. Each
// survivor's visual Y drops by the number of cleared rows beneath it. The
// removed occupants are returned so their handles can be disposed of.
func (f *Playfield) ClearAndCompactRows(rows []int) []*Occupant {
	if len(rows) == 0 {
		return nil
	}

	cleared := mapset.New[int]()
	for _, row := range rows {
		cleared.Put(row)
	}

	var removed []*Occupant
	for col := 0; col < f.columns; col++ {
		column := f.grid[col]
		dst := 0
		for row := 0; row < f.height; row++ {
			o := column[row]
			column[row] = nil

			if cleared.Has(row) {
				if o != nil {
					f.index.Del(o.ID)
					removed = append(removed, o)
				}
				continue
			}

			if o != nil {
				o.Y -= float64(row - dst)
				column[dst] = o
				f.index.Put(o.ID, piece.Cell{X: col, Y: dst})
			}
			dst++
		}
	}

	return removed
}

// ForEachOccupied calls fn for every occupied cell, column by column from the
// bottom up.
func (f *Playfield) ForEachOccupied(fn func(col, row int, o *Occupant)) {
	for col := 0; col < f.columns; col++ {
		for row := 0; row < f.height; row++ {
			if o := f.grid[col][row]; o != nil {
				fn(col, row, o)
			}
		}
	}
}

// Row returns the occupied state of a row as a bitmap, left to right. It is
// mostly useful for debugging and tests.
func (f *Playfield) Row(row int) []bool {
	out := make([]bool, f.columns)
	if row < 0 || row >= f.height {
		return out
	}
	for col := range out {
		out[col] = f.grid[col][row] != nil
	}
	return out
}

// Snapshot returns the occupied cells sorted by row then column.
func (f *Playfield) Snapshot() []piece.Cell {
	cells := make([]piece.Cell, 0, f.Len())
	f.ForEachOccupied(func(col, row int, _ *Occupant) {
		cells = append(cells, piece.Cell{X: col, Y: row})
	})
	slices.SortFunc(cells, func(a, b piece.Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return cells
}
