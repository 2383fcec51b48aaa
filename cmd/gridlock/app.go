package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/gridlock/debugui"
	debugui_ebiten "github.com/plus3/gridlock/debugui/ebiten"
	"github.com/plus3/gridlock/game"
)

const (
	cellSize = 30
	offsetX  = 50
	offsetY  = 50
)

var kindColors = [game.KindCount]color.RGBA{
	game.KindI: {R: 102, G: 191, B: 255, A: 255},
	game.KindJ: {R: 0, G: 121, B: 241, A: 255},
	game.KindL: {R: 255, G: 161, B: 0, A: 255},
	game.KindO: {R: 255, G: 203, B: 0, A: 255},
	game.KindS: {R: 0, G: 228, B: 48, A: 255},
	game.KindT: {R: 200, G: 122, B: 255, A: 255},
	game.KindZ: {R: 230, G: 41, B: 55, A: 255},
}

// App is the Ebiten host: it owns the engine, maps keys to commands and
// draws the snapshot. All commands are issued from Update, so the
// engine's single-writer rule holds without a queue.
type App struct {
	game     *game.Game
	recorder *game.Recorder

	fallInterval    float64
	fallAccumulator float64

	// Held-key repeat state, press-then-repeat.
	moveLeftTime  float32
	moveRightTime float32
	downTime      float32
	repeatDelay   float32
	repeatRate    float32

	imguiBackend *debugui_ebiten.ImguiBackend
	stateWindow  *debugui.StateWindow
	boardWindow  debugui.BoardWindow
	frameTimer   *debugui.FrameTimer
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if a.imguiBackend != nil {
		a.imguiBackend.BeginFrame()
		defer a.imguiBackend.EndFrame()
	}

	const dt = 1.0 / 60.0

	a.handleInput(dt)

	a.fallAccumulator += dt
	if a.fallAccumulator >= a.fallInterval {
		a.fallAccumulator = 0
		a.game.Tick()
	}

	if a.imguiBackend != nil {
		delta := a.frameTimer.GetDeltaTime()
		a.stateWindow.Render(a.game, a.recorder, delta)
		a.boardWindow.Render(a.game)
	}

	return nil
}

func (a *App) handleInput(dt float32) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.game.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.game.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		a.game.Rotate()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		a.moveLeftTime = 0
		a.game.MoveLeft()
	} else if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		a.moveLeftTime += dt
		if a.moveLeftTime > a.repeatDelay {
			a.moveLeftTime -= a.repeatRate
			a.game.MoveLeft()
		}
	} else {
		a.moveLeftTime = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		a.moveRightTime = 0
		a.game.MoveRight()
	} else if ebiten.IsKeyPressed(ebiten.KeyRight) {
		a.moveRightTime += dt
		if a.moveRightTime > a.repeatDelay {
			a.moveRightTime -= a.repeatRate
			a.game.MoveRight()
		}
	} else {
		a.moveRightTime = 0
	}

	// Down is an extra gravity step, rate limited while held.
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		a.downTime += dt
		if a.downTime > 0.05 {
			a.downTime = 0
			a.game.Tick()
		}
	} else {
		a.downTime = 0
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		offsetX-2, offsetY-2,
		game.BoardWidth*cellSize+4, game.BoardHeight*cellSize+4,
		1, color.RGBA{R: 130, G: 130, B: 130, A: 255}, false)

	for y, row := range a.game.Snapshot() {
		for x, cell := range row {
			if !cell.Occupied {
				continue
			}
			px := float32(offsetX + x*cellSize)
			py := float32(offsetY + y*cellSize)
			vector.DrawFilledRect(screen, px, py, cellSize, cellSize, kindColors[cell.Kind], false)
			vector.StrokeRect(screen, px, py, cellSize, cellSize, 1, color.RGBA{A: 255}, false)
		}
	}

	textX := offsetX + game.BoardWidth*cellSize + 20
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE\n%d", a.game.Score()), textX, offsetY)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LINES\n%d", a.game.Lines()), textX, offsetY+60)

	switch a.game.Status() {
	case game.Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - press P", offsetX+20, offsetY+game.BoardHeight*cellSize/2)
	case game.GameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R", offsetX+20, offsetY+game.BoardHeight*cellSize/2)
	}

	if a.imguiBackend != nil {
		a.imguiBackend.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.imguiBackend != nil {
		a.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
