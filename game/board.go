package game

// Board dimensions are fixed for the lifetime of the engine.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Cell is one board square: empty, or locked with the kind of the piece
// that filled it.
type Cell struct {
	Occupied bool
	Kind     Kind
}

// Board is the grid of locked cells. Row 0 is the top, row BoardHeight-1
// the bottom. The falling piece is not part of the board; it only merges
// in when it locks.
type Board struct {
	cells [BoardHeight][BoardWidth]Cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At reports the cell at (x, y). Out-of-range coordinates read as empty;
// bounds are the collision check's job, not the board's.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return Cell{}
	}
	return b.cells[y][x]
}

// Lock merges every occupied cell of shape, placed at pos, into the board.
// Cells that land above row 0 are discarded: a piece may lock while still
// partially off the top of the board.
func (b *Board) Lock(shape [][]bool, pos Position, kind Kind) {
	for r := range shape {
		for c, filled := range shape[r] {
			if !filled {
				continue
			}
			x, y := pos.X+c, pos.Y+r
			if y < 0 {
				continue
			}
			if x >= 0 && x < BoardWidth && y < BoardHeight {
				b.cells[y][x] = Cell{Occupied: true, Kind: kind}
			}
		}
	}
}

// ClearFullRows removes every fully occupied row, shifts the rows above it
// down, inserts empty rows at the top, and returns how many rows went.
// All full rows are marked up front and the board is rebuilt in one
// bottom-up pass, so simultaneous clears never interfere with each other.
func (b *Board) ClearFullRows() int {
	full := [BoardHeight]bool{}
	cleared := 0
	for y := 0; y < BoardHeight; y++ {
		full[y] = b.rowFull(y)
		if full[y] {
			cleared++
		}
	}
	if cleared == 0 {
		return 0
	}

	dst := BoardHeight - 1
	for y := BoardHeight - 1; y >= 0; y-- {
		if full[y] {
			continue
		}
		b.cells[dst] = b.cells[y]
		dst--
	}
	for ; dst >= 0; dst-- {
		b.cells[dst] = [BoardWidth]Cell{}
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < BoardWidth; x++ {
		if !b.cells[y][x].Occupied {
			return false
		}
	}
	return true
}

// snapshot copies the locked cells into a fresh slice-of-slices grid.
func (b *Board) snapshot() [][]Cell {
	out := make([][]Cell, BoardHeight)
	for y := range out {
		out[y] = make([]Cell, BoardWidth)
		copy(out[y], b.cells[y][:])
	}
	return out
}
