// Package debugui provides immediate-mode Dear ImGui inspection windows
// for a running game engine: live state, telemetry counters and a board
// occupancy view. Hosts mount it behind a debug flag; the engine itself
// never depends on it.
package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/gridlock/game"
)

// StateWindow renders engine status, score and frame timing. Keep one
// instance alive across frames; it owns the frame-time history buffer.
type StateWindow struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewStateWindow returns a window with a frame-time history of the given
// length.
func NewStateWindow(historyFrames int) *StateWindow {
	return &StateWindow{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render draws the window for the current frame. rec may be nil when the
// host runs without telemetry.
func (w *StateWindow) Render(g *game.Game, rec *game.Recorder, deltaTime float32) {
	if !imgui.BeginV("Engine State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	w.frameHistory[w.frameIndex] = deltaTime * 1000.0
	w.frameIndex = (w.frameIndex + 1) % w.historyFrames

	imgui.Text(fmt.Sprintf("Status: %s", g.Status()))
	imgui.Text(fmt.Sprintf("Score: %d", g.Score()))
	imgui.Text(fmt.Sprintf("Lines: %d", g.Lines()))

	if kind, pos, ok := g.ActivePiece(); ok {
		imgui.Text(fmt.Sprintf("Piece: %s at (%d, %d)", kind, pos.X, pos.Y))
	} else {
		imgui.Text("Piece: none")
	}

	var avgFrameTime float32
	for _, ft := range w.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(w.historyFrames)

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	imgui.PlotLinesFloatPtr("##frametime", &w.frameHistory[0], int32(len(w.frameHistory)))

	if rec != nil {
		renderTelemetry(rec)
	}

	imgui.End()
}

func renderTelemetry(rec *game.Recorder) {
	if !imgui.TreeNodeStr("Telemetry") {
		return
	}

	imgui.Text(fmt.Sprintf("Ticks: %d", rec.Ticks()))
	imgui.Text(fmt.Sprintf("Locks: %d", rec.Locks()))
	imgui.Text(fmt.Sprintf("Games Over: %d", rec.GamesOver()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SpawnTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Spawns")
		imgui.TableHeadersRow()

		for k := game.Kind(0); k < game.KindCount; k++ {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(k.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", rec.Spawns(k)))
		}

		imgui.EndTable()
	}

	for n := 1; n <= 4; n++ {
		imgui.BulletText(fmt.Sprintf("%d-line clears: %d", n, rec.Clears(n)))
	}

	imgui.TreePop()
}

// BoardWindow renders per-row occupancy of the current snapshot.
type BoardWindow struct{}

// Render draws the board table for the current frame.
func (BoardWindow) Render(g *game.Game) {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	grid := g.Snapshot()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("BoardTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Row")
		imgui.TableSetupColumn("Cells")
		imgui.TableSetupColumn("Filled")
		imgui.TableHeadersRow()

		for y, row := range grid {
			filled := 0
			line := make([]byte, len(row))
			for x, cell := range row {
				if cell.Occupied {
					filled++
					line[x] = cell.Kind.String()[0]
				} else {
					line[x] = '.'
				}
			}

			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%2d", y))
			imgui.TableNextColumn()
			imgui.Text(string(line))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d/%d", filled, len(row)))
		}

		imgui.EndTable()
	}

	imgui.End()
}

// FrameTimer measures wall-clock delta time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

// NewFrameTimer returns a timer primed at the current time.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{lastFrameTime: time.Now()}
}

// GetDeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
