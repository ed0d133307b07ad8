package playfield

import "github.com/plus3/tetra/piece"

// PutSingle occupies one cell, which no tetromino can do on its own.
func (f *Playfield) PutSingle(col, row int) *Occupant {
	f.nextID++
	o := &Occupant{ID: f.nextID, Kind: piece.O}
	c := piece.Cell{X: col, Y: row}
	o.X, o.Y = float64(col)+0.5, float64(row)+0.5
	f.grid[col][row] = o
	f.index.Put(o.ID, c)
	return o
}
