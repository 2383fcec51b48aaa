package game

// Position is the board coordinate of a shape's top-left cell. Y may be
// negative while a piece is still partly above the visible board.
type Position struct {
	X, Y int
}

// collides reports whether placing shape at pos would leave the board
// sideways or below, or overlap a locked cell. Cells above row 0 only
// fail the horizontal and floor checks; a freshly spawned or rotated
// piece is allowed to hang off the top.
func collides(shape [][]bool, pos Position, board *Board) bool {
	for r := range shape {
		for c, filled := range shape[r] {
			if !filled {
				continue
			}
			x, y := pos.X+c, pos.Y+r
			if x < 0 || x >= BoardWidth || y >= BoardHeight {
				return true
			}
			if y >= 0 && board.cells[y][x].Occupied {
				return true
			}
		}
	}
	return false
}
