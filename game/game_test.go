package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPicker(k Kind) Picker {
	return PickerFunc(func() Piece { return NewPiece(k) })
}

// shapePicker returns pieces with an arbitrary shape, for steering tests.
func shapePicker(k Kind, rows ...string) Picker {
	shape := make([][]bool, len(rows))
	for r, row := range rows {
		shape[r] = make([]bool, len(row))
		for c, ch := range row {
			shape[r][c] = ch == '#'
		}
	}
	return PickerFunc(func() Piece {
		return Piece{Kind: k, Shape: copyShape(shape)}
	})
}

func TestNewGameHasNoActivePiece(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))

	_, _, ok := g.ActivePiece()
	assert.False(t, ok)
	assert.Equal(t, Running, g.Status())
	assert.Equal(t, 0, g.Score())

	for _, row := range g.Snapshot() {
		for _, cell := range row {
			assert.False(t, cell.Occupied)
		}
	}
}

func TestFirstTickSpawnsAtTopCenter(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))
	g.Tick()

	kind, pos, ok := g.ActivePiece()
	require.True(t, ok)
	assert.Equal(t, KindO, kind)
	assert.Equal(t, Position{X: BoardWidth/2 - 1, Y: 0}, pos)
}

func TestTickDescendsOneRow(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindT)))
	g.Tick()

	for want := 1; want <= 5; want++ {
		g.Tick()
		_, pos, ok := g.ActivePiece()
		require.True(t, ok)
		assert.Equal(t, Position{X: 4, Y: want}, pos)
		assert.Equal(t, 0, g.Score())
	}
}

func TestMoveHorizontalStopsAtWall(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))
	g.Tick()

	for i := 0; i < 4; i++ {
		g.MoveLeft()
	}
	_, pos, _ := g.ActivePiece()
	assert.Equal(t, 0, pos.X)

	// A fifth move would put the piece at x = -1; rejected, not an error.
	g.MoveLeft()
	_, pos, _ = g.ActivePiece()
	assert.Equal(t, 0, pos.X)

	for i := 0; i < 10; i++ {
		g.MoveRight()
	}
	_, pos, _ = g.ActivePiece()
	assert.Equal(t, BoardWidth-2, pos.X)
}

func TestMoveBlockedByLockedCells(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))
	g.board.cells[0][6] = Cell{Occupied: true, Kind: KindJ}
	g.board.cells[1][6] = Cell{Occupied: true, Kind: KindJ}

	g.Tick() // O at x=4, columns 4-5
	g.MoveRight()

	_, pos, _ := g.ActivePiece()
	assert.Equal(t, 4, pos.X)
}

func TestMoveBeforeFirstSpawnIsNoop(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))
	g.MoveLeft()
	g.MoveRight()
	g.Rotate()
	_, _, ok := g.ActivePiece()
	assert.False(t, ok)
}

func TestRotateReplacesShape(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindI)))
	g.Tick()
	g.Tick() // drop to y=1 so the vertical I has room

	g.Rotate()

	grid := g.Snapshot()
	for y := 1; y <= 4; y++ {
		assert.True(t, grid[y][4].Occupied, "row %d", y)
	}
	assert.False(t, grid[1][5].Occupied)
}

func TestRotateRejectedAtWall(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindI)))
	g.Tick()
	g.Tick()
	g.Rotate() // vertical at x=4

	for i := 0; i < 8; i++ {
		g.MoveRight()
	}
	_, pos, _ := g.ActivePiece()
	require.Equal(t, BoardWidth-1, pos.X)

	// Rotating back to horizontal would reach past the right wall.
	// No wall kick: the rotation is rejected and the shape kept.
	g.Rotate()
	grid := g.Snapshot()
	for y := 1; y <= 4; y++ {
		assert.True(t, grid[y][BoardWidth-1].Occupied, "row %d", y)
	}
}

func TestLockClearsSingleLineAndScores(t *testing.T) {
	g := New(WithPicker(shapePicker(KindI, "#")))
	fillRow(g.board, BoardHeight-1, 4)

	g.Tick() // spawn 1x1 at (4, 0)
	for y := 0; y < BoardHeight-1; y++ {
		g.Tick()
	}
	_, pos, ok := g.ActivePiece()
	require.True(t, ok)
	require.Equal(t, Position{X: 4, Y: BoardHeight - 1}, pos)
	require.Equal(t, 0, g.Score())

	// The locking tick completes row 19, clears it and spawns a successor.
	g.Tick()

	assert.Equal(t, PointsPerLine, g.Score())
	assert.Equal(t, 1, g.Lines())
	grid := g.Snapshot()
	for x := 0; x < BoardWidth; x++ {
		assert.False(t, grid[BoardHeight-1][x].Occupied, "col %d", x)
	}

	_, pos, ok = g.ActivePiece()
	require.True(t, ok)
	assert.Equal(t, Position{X: 4, Y: 0}, pos)
}

func TestLockClearsMultipleLines(t *testing.T) {
	g := New(WithPicker(shapePicker(KindI, "#", "#")))
	fillRow(g.board, BoardHeight-1, 4)
	fillRow(g.board, BoardHeight-2, 4)

	for i := 0; i < BoardHeight; i++ {
		g.Tick()
	}

	assert.Equal(t, 2*PointsPerLine, g.Score())
	assert.Equal(t, 2, g.Lines())
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if x == 4 && y <= 1 {
				continue // the 2-tall successor piece
			}
			assert.False(t, g.Snapshot()[y][x].Occupied, "row %d col %d", y, x)
		}
	}
}

func TestPartialRowSurvivesClear(t *testing.T) {
	g := New(WithPicker(shapePicker(KindL, "#")))
	fillRow(g.board, BoardHeight-1, 4)
	fillRow(g.board, BoardHeight-2, 0, 4)

	for i := 0; i < BoardHeight+1; i++ {
		g.Tick()
	}

	// Bottom row cleared; the partial row above shifted down onto it,
	// still with its own gaps.
	assert.Equal(t, PointsPerLine, g.Score())
	grid := g.Snapshot()
	assert.False(t, grid[BoardHeight-1][0].Occupied)
	assert.False(t, grid[BoardHeight-1][4].Occupied)
	assert.True(t, grid[BoardHeight-1][1].Occupied)
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))
	g.board.cells[0][4] = Cell{Occupied: true, Kind: KindZ}

	g.Tick()

	assert.True(t, g.Over())
	assert.Equal(t, GameOver, g.Status())
	_, _, ok := g.ActivePiece()
	assert.False(t, ok)

	// The locked board is the final state; nothing moves afterwards.
	before := g.Snapshot()
	g.Tick()
	g.MoveLeft()
	g.Rotate()
	g.TogglePause()
	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, GameOver, g.Status())
}

func TestStackingToTheTopEndsGame(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindO)))

	for i := 0; i < 5000 && !g.Over(); i++ {
		g.Tick()
	}

	require.True(t, g.Over())
	assert.True(t, g.Snapshot()[0][4].Occupied)
	assert.Equal(t, 0, g.Score())
}

func TestPauseFreezesEverything(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindT)))
	g.Tick()
	g.TogglePause()
	require.True(t, g.Paused())

	g.Tick()
	g.MoveLeft()
	g.Rotate()
	_, pos, _ := g.ActivePiece()
	assert.Equal(t, Position{X: 4, Y: 0}, pos)

	g.TogglePause()
	require.False(t, g.Paused())
	g.Tick()
	_, pos, _ = g.ActivePiece()
	assert.Equal(t, Position{X: 4, Y: 1}, pos)
}

func TestResetFromAnyState(t *testing.T) {
	states := map[string]func(*Game){
		"running": func(g *Game) { g.Tick(); g.Tick() },
		"paused":  func(g *Game) { g.Tick(); g.TogglePause() },
		"game over": func(g *Game) {
			for i := 0; i < 5000 && !g.Over(); i++ {
				g.Tick()
			}
		},
	}

	for name, arrange := range states {
		t.Run(name, func(t *testing.T) {
			g := New(WithPicker(fixedPicker(KindO)))
			arrange(g)

			g.Reset()

			assert.Equal(t, 0, g.Score())
			assert.Equal(t, 0, g.Lines())
			assert.False(t, g.Over())
			assert.False(t, g.Paused())
			_, _, ok := g.ActivePiece()
			assert.False(t, ok)
			for _, row := range g.Snapshot() {
				for _, cell := range row {
					assert.False(t, cell.Occupied)
				}
			}

			// The next tick installs the first piece of the new game.
			g.Tick()
			_, _, ok = g.ActivePiece()
			assert.True(t, ok)
		})
	}
}

func TestSnapshotOverlaysActivePiece(t *testing.T) {
	g := New(WithPicker(fixedPicker(KindS)))
	g.Tick()

	grid := g.Snapshot()
	// .##
	// ##.
	assert.False(t, grid[0][4].Occupied)
	assert.True(t, grid[0][5].Occupied)
	assert.True(t, grid[0][6].Occupied)
	assert.True(t, grid[1][4].Occupied)
	assert.True(t, grid[1][5].Occupied)
	assert.False(t, grid[1][6].Occupied)
	assert.Equal(t, KindS, grid[0][5].Kind)

	// Mutating the snapshot must not leak back into the engine.
	grid[0][5] = Cell{}
	assert.True(t, g.Snapshot()[0][5].Occupied)
}
