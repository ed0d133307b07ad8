package playfield_test

import (
	"testing"

	"github.com/plus3/tetra/piece"
	"github.com/plus3/tetra/playfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollidesBounds(t *testing.T) {
	f := playfield.New(10, 20, 4)

	for _, kind := range piece.Kinds() {
		p := piece.New(kind)
		for range 4 {
			// walk the piece across every offset near the edges
			for dx := -4; dx <= 12; dx++ {
				for dy := -4; dy <= 4; dy++ {
					cand := p.Translate(dx, dy)
					outside := false
					for _, c := range cand.Cells() {
						if c.Y < 0 || c.X < 0 || c.X >= 10 {
							outside = true
						}
					}
					if outside {
						assert.True(t, f.Collides(cand), "%s %v", kind, cand.Cells())
					} else {
						assert.False(t, f.Collides(cand), "%s %v", kind, cand.Cells())
					}
				}
			}
			p = p.Rotate()
		}
	}
}

func TestCollidesOverflowRows(t *testing.T) {
	f := playfield.New(10, 20, 4)

	above := piece.New(piece.O).Translate(4, 20)
	assert.False(t, f.Collides(above), "overflow rows are legal")

	top := piece.New(piece.O).Translate(4, 22)
	assert.False(t, f.Collides(top))

	past := piece.New(piece.O).Translate(4, 23)
	assert.True(t, f.Collides(past), "no storage past the overflow rows")
}

func TestCollidesOccupied(t *testing.T) {
	f := playfield.New(10, 20, 4)
	locked := piece.New(piece.O).Translate(0, 0)
	f.Place(locked)

	assert.True(t, f.Collides(piece.New(piece.O).Translate(1, 1)))
	assert.False(t, f.Collides(piece.New(piece.O).Translate(2, 0)))
	assert.False(t, f.Collides(piece.New(piece.O).Translate(0, 2)))
}

func TestClearAndWriteCells(t *testing.T) {
	f := playfield.New(10, 20, 4)
	p := piece.New(piece.T).Translate(3, 5)
	placed := f.Place(p, "a", "b", "c", "d")
	require.Equal(t, 4, f.Len())

	for i, c := range p.Cells() {
		o := f.At(c.X, c.Y)
		require.NotNil(t, o)
		assert.Same(t, placed[i], o)
		assert.Equal(t, float64(c.X)+0.5, o.X)
		assert.Equal(t, float64(c.Y)+0.5, o.Y)
		got, ok := f.Locate(o.ID)
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	assert.Equal(t, "c", placed[2].Handle)

	detached := f.ClearCells(p)
	assert.Equal(t, placed, detached)
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Collides(p), "a detached piece does not collide with itself")
	_, ok := f.Locate(placed[0].ID)
	assert.False(t, ok)

	moved := p.Translate(0, -1)
	f.WriteCells(moved, detached)
	assert.Equal(t, 4, f.Len())
	for i, c := range moved.Cells() {
		assert.Same(t, detached[i], f.At(c.X, c.Y))
	}
	assert.Nil(t, f.At(4, 6), "old top cell of the T is empty after the move")
}

func TestWriteCellsPanicsOnOccupiedCell(t *testing.T) {
	f := playfield.New(10, 20, 4)
	p := piece.New(piece.O)
	f.Place(p)
	assert.Panics(t, func() { f.Place(p) })
}

func TestIsRowFull(t *testing.T) {
	f := playfield.New(4, 6, 2)
	assert.False(t, f.IsRowFull(0))

	f.Place(piece.New(piece.I))
	assert.True(t, f.IsRowFull(0))
	assert.False(t, f.IsRowFull(1))
	assert.False(t, f.IsRowFull(-1))
	assert.False(t, f.IsRowFull(100))
	assert.Equal(t, []int{0}, f.FullRows())
}

func TestFullRowsIgnoresOverflow(t *testing.T) {
	f := playfield.New(4, 6, 2)
	f.Place(piece.New(piece.I).Translate(0, 6))
	assert.True(t, f.IsRowFull(6))
	assert.Empty(t, f.FullRows())
}

func TestClearAndCompactRows(t *testing.T) {
	tests := []struct {
		name    string
		full    []int
		partial []int // rows holding a single occupant at column 0
		clear   []int
		want    map[int]int // original row -> expected row for column 0 survivors
	}{
		{
			name:  "all four rows",
			full:  []int{0, 1, 2, 3},
			clear: []int{0, 1, 2, 3},
			want:  map[int]int{},
		},
		{
			name:  "bottom row only",
			full:  []int{0, 1, 2, 3},
			clear: []int{0},
			want:  map[int]int{1: 0, 2: 1, 3: 2},
		},
		{
			name:  "two adjacent rows",
			full:  []int{0, 1, 2, 3},
			clear: []int{1, 2},
			want:  map[int]int{0: 0, 3: 1},
		},
		{
			name:  "split rows",
			full:  []int{0, 1, 2, 3},
			clear: []int{0, 2},
			want:  map[int]int{1: 0, 3: 1},
		},
		{
			name:    "partial rows above a gap",
			full:    []int{0, 2},
			partial: []int{1, 3, 5},
			clear:   []int{0, 2},
			want:    map[int]int{1: 0, 3: 1, 5: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := playfield.New(4, 8, 2)
			byRow := map[int]*playfield.Occupant{}
			for _, row := range tt.full {
				occ := f.Place(piece.New(piece.I).Translate(0, row))
				byRow[row] = occ[0]
			}
			for _, row := range tt.partial {
				byRow[row] = f.PutSingle(0, row)
			}

			before := f.Len()
			removed := f.ClearAndCompactRows(tt.clear)
			assert.Len(t, removed, len(tt.clear)*4)
			assert.Equal(t, before-len(removed), f.Len())

			for orig, o := range byRow {
				newRow, kept := tt.want[orig]
				cell, ok := f.Locate(o.ID)
				if !kept {
					assert.False(t, ok, "row %d should be cleared", orig)
					continue
				}
				require.True(t, ok, "row %d should survive", orig)
				assert.Equal(t, piece.Cell{X: 0, Y: newRow}, cell)
				assert.Same(t, o, f.At(0, newRow))
				assert.Equal(t, float64(newRow)+0.5, o.Y, "visual offset follows the shift")
			}

			// column 0 holds exactly the survivors, with no gaps between them
			occupied := map[int]bool{}
			for _, row := range tt.want {
				occupied[row] = true
			}
			for row := 0; row < f.Height(); row++ {
				assert.Equal(t, occupied[row], f.At(0, row) != nil, "column 0, row %d", row)
			}
		})
	}
}

func TestClearAndCompactRowsEmpty(t *testing.T) {
	f := playfield.New(4, 8, 2)
	f.Place(piece.New(piece.O))
	assert.Nil(t, f.ClearAndCompactRows(nil))
	assert.Equal(t, 4, f.Len())
}

func TestForEachOccupied(t *testing.T) {
	f := playfield.New(10, 20, 4)
	f.Place(piece.New(piece.S).Translate(2, 0))

	var cells []piece.Cell
	f.ForEachOccupied(func(col, row int, o *playfield.Occupant) {
		assert.Equal(t, piece.Green, o.Color())
		cells = append(cells, piece.Cell{X: col, Y: row})
	})
	assert.ElementsMatch(t, []piece.Cell{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 1}}, cells)
	assert.Equal(t, []piece.Cell{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 4, Y: 1}}, f.Snapshot())
	assert.Equal(t, []bool{false, false, false, true, true, false, false, false, false, false}, f.Row(1))
}
