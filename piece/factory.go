package piece

import (
	"math/rand/v2"
	"time"
)

// Factory decides which kind comes next and places it at the spawn point.
// It is not safe for concurrent use; the engine serializes access.
type Factory struct {
	draw func() Kind
	next Kind
}

// NewFactory returns a factory drawing kinds uniformly from src. A nil src
// seeds a PCG from the wall clock.
func NewFactory(src rand.Source) *Factory {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>17|1)
	}
	rng := rand.New(src)
	return newFactory(func() Kind {
		return Kind(rng.IntN(kindCount))
	})
}

// NewSequence returns a factory that cycles through kinds in order. It panics
// if kinds is empty or holds an unknown kind.
func NewSequence(kinds ...Kind) *Factory {
	if len(kinds) == 0 {
		panic("piece sequence needs at least one kind")
	}
	for _, k := range kinds {
		mustShape(k)
	}
	seq := append([]Kind(nil), kinds...)
	i := 0
	return newFactory(func() Kind {
		k := seq[i%len(seq)]
		i++
		return k
	})
}

func newFactory(draw func() Kind) *Factory {
	f := &Factory{draw: draw}
	f.next = f.draw()
	return f
}

// Peek returns the kind the next Spawn will produce.
func (f *Factory) Peek() Kind {
	return f.next
}

// Spawn builds the next piece, centered horizontally and resting on the first
// row above the visible board.
func (f *Factory) Spawn(numColumns, numRows int) Piece {
	kind := f.next
	f.next = f.draw()
	return New(kind).Translate(numColumns/2, numRows)
}
