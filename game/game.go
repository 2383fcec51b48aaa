package game

import "math/rand/v2"

// Status is the coarse engine state.
type Status uint8

const (
	Running Status = iota
	Paused
	GameOver
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// PointsPerLine is the flat score awarded for each cleared row.
const PointsPerLine = 100

// Game is the engine state: the locked board, the falling piece (nil
// before the first spawn and after game over), score and status. It is
// not safe for concurrent use; Loop provides the single-writer command
// queue for hosts with more than one event source.
type Game struct {
	board    *Board
	piece    *Piece
	pos      Position
	score    int
	lines    int
	status   Status
	picker   Picker
	recorder *Recorder
}

// Option configures a Game at construction time.
type Option func(*Game)

// WithPicker replaces the default uniform random piece selection.
func WithPicker(p Picker) Option {
	return func(g *Game) { g.picker = p }
}

// WithRand keeps uniform selection but draws from the given source, for
// deterministic runs.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.picker = NewRandomPicker(rng) }
}

// WithRecorder attaches a telemetry recorder.
func WithRecorder(r *Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// New returns a fresh game: empty board, no active piece, score 0,
// running. The first Tick spawns the first piece.
func New(opts ...Option) *Game {
	g := &Game{
		board:  NewBoard(),
		picker: NewRandomPicker(nil),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reset discards all state and reinitializes to the starting position.
// Valid in every status, including game over.
func (g *Game) Reset() {
	g.board = NewBoard()
	g.piece = nil
	g.pos = Position{}
	g.score = 0
	g.lines = 0
	g.status = Running
}

// Tick advances gravity one step: the piece falls one row, or locks,
// clears full rows, scores them and a successor spawns. On a fresh or
// just-reset game the first Tick performs the initial spawn. No-op while
// paused or after game over.
func (g *Game) Tick() {
	if g.status != Running {
		return
	}
	if g.recorder != nil {
		g.recorder.tick()
	}
	if g.piece == nil {
		g.spawn()
		return
	}

	candidate := Position{X: g.pos.X, Y: g.pos.Y + 1}
	if !collides(g.piece.Shape, candidate, g.board) {
		g.pos = candidate
		return
	}

	g.board.Lock(g.piece.Shape, g.pos, g.piece.Kind)
	if g.recorder != nil {
		g.recorder.lock(g.piece.Kind)
	}
	g.piece = nil

	if cleared := g.board.ClearFullRows(); cleared > 0 {
		g.score += cleared * PointsPerLine
		g.lines += cleared
		if g.recorder != nil {
			g.recorder.clear(cleared)
		}
	}

	g.spawn()
}

// spawn draws the next piece and installs it at top-center. A spawn that
// immediately collides is the one terminal transition: game over, board
// left as-is.
func (g *Game) spawn() {
	piece := g.picker.Pick()
	pos := Position{X: BoardWidth/2 - 1, Y: 0}
	if collides(piece.Shape, pos, g.board) {
		g.status = GameOver
		if g.recorder != nil {
			g.recorder.gameOver()
		}
		return
	}
	g.piece = &piece
	g.pos = pos
	if g.recorder != nil {
		g.recorder.spawn(piece.Kind)
	}
}

// Direction is a horizontal move, one column at a time.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// MoveHorizontal shifts the piece one column left or right. A blocked
// move is silently rejected; so is any move while paused, after game
// over, or before the first spawn.
func (g *Game) MoveHorizontal(dir Direction) {
	if g.status != Running || g.piece == nil {
		return
	}
	candidate := Position{X: g.pos.X + int(dir), Y: g.pos.Y}
	if !collides(g.piece.Shape, candidate, g.board) {
		g.pos = candidate
	}
}

// MoveLeft is MoveHorizontal(Left).
func (g *Game) MoveLeft() { g.MoveHorizontal(Left) }

// MoveRight is MoveHorizontal(Right).
func (g *Game) MoveRight() { g.MoveHorizontal(Right) }

// Rotate turns the piece 90 degrees clockwise in place. There is no wall
// kick: if the rotated shape collides at the current position the piece
// keeps its prior shape, even when a shifted rotation would have fit.
func (g *Game) Rotate() {
	if g.status != Running || g.piece == nil {
		return
	}
	rotated := Rotated(g.piece.Shape)
	if !collides(rotated, g.pos, g.board) {
		g.piece.Shape = rotated
	}
}

// TogglePause flips between running and paused. Ignored after game over.
func (g *Game) TogglePause() {
	switch g.status {
	case Running:
		g.status = Paused
	case Paused:
		g.status = Running
	}
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lines returns the total rows cleared since the last reset.
func (g *Game) Lines() int { return g.lines }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.status == GameOver }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.status == Paused }

// Status returns the coarse engine state.
func (g *Game) Status() Status { return g.status }

// ActivePiece returns the kind and position of the falling piece, or
// ok=false when there is none.
func (g *Game) ActivePiece() (kind Kind, pos Position, ok bool) {
	if g.piece == nil {
		return 0, Position{}, false
	}
	return g.piece.Kind, g.pos, true
}

// Snapshot returns the renderable grid: the locked board overlaid with
// the active piece's cells at y >= 0. The returned grid is a copy; the
// engine is never mutated through it.
func (g *Game) Snapshot() [][]Cell {
	grid := g.board.snapshot()
	if g.piece == nil {
		return grid
	}
	for r := range g.piece.Shape {
		for c, filled := range g.piece.Shape[r] {
			if !filled {
				continue
			}
			x, y := g.pos.X+c, g.pos.Y+r
			if y < 0 || y >= BoardHeight || x < 0 || x >= BoardWidth {
				continue
			}
			grid[y][x] = Cell{Occupied: true, Kind: g.piece.Kind}
		}
	}
	return grid
}
