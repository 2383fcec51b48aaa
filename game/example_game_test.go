package game_test

import (
	"fmt"

	"github.com/plus3/gridlock/game"
)

// ExampleGame walks a piece through the basic command surface: spawn on
// the first tick, steer it, pause and resume, and read the state back.
func ExampleGame() {
	pieces := game.PickerFunc(func() game.Piece { return game.NewPiece(game.KindO) })
	g := game.New(game.WithPicker(pieces))

	g.Tick() // first tick spawns at top-center
	kind, pos, _ := g.ActivePiece()
	fmt.Printf("spawned %s at (%d, %d)\n", kind, pos.X, pos.Y)

	g.MoveLeft()
	g.Tick()
	_, pos, _ = g.ActivePiece()
	fmt.Printf("steered to (%d, %d)\n", pos.X, pos.Y)

	g.TogglePause()
	g.Tick() // ignored while paused
	_, pos, _ = g.ActivePiece()
	fmt.Printf("paused at (%d, %d): %s\n", pos.X, pos.Y, g.Status())

	g.TogglePause()
	fmt.Printf("score %d, over: %v\n", g.Score(), g.Over())

	// Output:
	// spawned O at (4, 0)
	// steered to (3, 1)
	// paused at (3, 1): paused
	// score 0, over: false
}

// ExampleGame_Reset shows that reset is accepted in any state and
// returns the engine to its starting configuration.
func ExampleGame_Reset() {
	g := game.New()

	g.Tick()
	g.TogglePause()
	g.Reset()

	_, _, active := g.ActivePiece()
	fmt.Printf("active piece: %v\n", active)
	fmt.Printf("score %d, paused %v, over %v\n", g.Score(), g.Paused(), g.Over())

	// Output:
	// active piece: false
	// score 0, paused false, over false
}
