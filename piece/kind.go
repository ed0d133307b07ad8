package piece

//go:generate go tool stringer -type=Kind

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
)

const kindCount = int(Z) + 1

// Color is the display color of a kind. The engine carries it for renderers
// and never interprets it.
type Color struct {
	R, G, B uint8
}

var (
	Cyan    = Color{0, 255, 255}
	Blue    = Color{0, 0, 255}
	Orange  = Color{255, 165, 0}
	Yellow  = Color{255, 255, 0}
	Green   = Color{102, 255, 0}
	Magenta = Color{255, 0, 255}
	Red     = Color{255, 0, 0}
)

type shape struct {
	cells [4]Cell
	pivot Pivot
	color Color
}

var shapes = [kindCount]shape{
	I: {cells: [4]Cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, pivot: Pivot{1.5, 0}, color: Cyan},
	J: {cells: [4]Cell{{0, 0}, {1, 0}, {1, 1}, {1, 2}}, pivot: Pivot{1, 0}, color: Blue},
	L: {cells: [4]Cell{{0, 0}, {0, 1}, {0, 2}, {1, 0}}, pivot: Pivot{0, 0}, color: Orange},
	O: {cells: [4]Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, pivot: Pivot{0.5, 0.5}, color: Yellow},
	S: {cells: [4]Cell{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, pivot: Pivot{1, 0.5}, color: Green},
	T: {cells: [4]Cell{{0, 1}, {1, 1}, {1, 0}, {2, 1}}, pivot: Pivot{1, 0}, color: Magenta},
	Z: {cells: [4]Cell{{0, 1}, {1, 1}, {1, 0}, {2, 0}}, pivot: Pivot{1, 0.5}, color: Red},
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{I, J, L, O, S, T, Z}
}

// Valid reports whether k names one of the seven shapes.
func (k Kind) Valid() bool {
	return int(k) < kindCount
}

// Color returns the fixed display color for the kind.
func (k Kind) Color() Color {
	return mustShape(k).color
}

func mustShape(k Kind) shape {
	if !k.Valid() {
		panic("unknown tetromino kind: " + k.String())
	}
	return shapes[k]
}
