package playfield

import "github.com/plus3/tetra/piece"

// OccupantID uniquely identifies an occupant for the lifetime of a playfield.
type OccupantID uint32

// Occupant is the token stored in an occupied cell. X and Y track where a
// renderer should draw it (cell center); Handle is an opaque value owned by
// the presentation layer.
type Occupant struct {
	ID     OccupantID
	Kind   piece.Kind
	X, Y   float64
	Handle any
}

// Color is a convenience for renderers.
func (o *Occupant) Color() piece.Color {
	return o.Kind.Color()
}
