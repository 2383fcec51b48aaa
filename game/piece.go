// Package game implements a falling-block puzzle engine: a fixed 20x10
// board, the seven classic piece templates, gravity, collision, rotation,
// line clearing and scoring. The engine is render-agnostic and consumes
// abstract commands; hosts under cmd/ bind timers and input devices to it.
package game

import "math/rand/v2"

// Kind identifies one of the seven piece templates. It doubles as the
// opaque color tag written into locked board cells; hosts map kinds to
// whatever palette they render with.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ

	KindCount = 7
)

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// templates holds the canonical shape for each kind, rows top to bottom.
// Templates are read-only; live pieces always get a deep copy.
var templates = [KindCount][][]bool{
	KindI: {
		{true, true, true, true},
	},
	KindJ: {
		{true, false, false},
		{true, true, true},
	},
	KindL: {
		{false, false, true},
		{true, true, true},
	},
	KindO: {
		{true, true},
		{true, true},
	},
	KindS: {
		{false, true, true},
		{true, true, false},
	},
	KindT: {
		{false, true, false},
		{true, true, true},
	},
	KindZ: {
		{true, true, false},
		{false, true, true},
	},
}

// Piece is a live, mutable copy of a template: the falling shape plus the
// kind it was stamped from. Rotation replaces Shape wholesale.
type Piece struct {
	Kind  Kind
	Shape [][]bool
}

// NewPiece returns a fresh piece of the given kind with its own copy of
// the template grid.
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, Shape: copyShape(templates[k])}
}

// Rotated returns the shape turned 90 degrees clockwise: transpose, then
// reverse each row. The input is never mutated.
func Rotated(shape [][]bool) [][]bool {
	if len(shape) == 0 {
		return nil
	}
	rows, cols := len(shape), len(shape[0])
	out := make([][]bool, cols)
	for r := range out {
		out[r] = make([]bool, rows)
		for c := range out[r] {
			out[r][c] = shape[rows-1-c][r]
		}
	}
	return out
}

func copyShape(shape [][]bool) [][]bool {
	out := make([][]bool, len(shape))
	for r := range shape {
		out[r] = make([]bool, len(shape[r]))
		copy(out[r], shape[r])
	}
	return out
}

// Picker supplies the next piece at spawn time. Implementations must
// return a piece whose shape is safe for the engine to mutate.
type Picker interface {
	Pick() Piece
}

// RandomPicker selects uniformly among the seven kinds.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker returns a picker backed by the given source, or by the
// shared global source when rng is nil.
func NewRandomPicker(rng *rand.Rand) *RandomPicker {
	return &RandomPicker{rng: rng}
}

func (p *RandomPicker) Pick() Piece {
	var k Kind
	if p.rng != nil {
		k = Kind(p.rng.IntN(KindCount))
	} else {
		k = Kind(rand.IntN(KindCount))
	}
	return NewPiece(k)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func() Piece

func (f PickerFunc) Pick() Piece { return f() }
