// Command gridlock-tui is the terminal host: tcell rendering, keyboard
// input and audio cues, all reduced to engine commands on one queue. The
// gravity ticker and the keyboard are independent producers; the loop
// goroutine is the only writer the engine sees.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/gridlock/game"
)

func main() {
	fallInterval := flag.Duration("fall", time.Second, "Gravity interval between automatic down steps.")
	seed := flag.Uint64("seed", 0, "Random seed for piece selection (0 uses a random seed).")
	mute := flag.Bool("mute", false, "Disable audio cues.")
	flag.Parse()

	opts := []game.Option{}
	if *seed != 0 {
		opts = append(opts, game.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}

	ui, err := NewUI(game.New(opts...), *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridlock-tui: %v\n", err)
		os.Exit(1)
	}
	defer ui.Cleanup()

	ui.Run(*fallInterval)
}

// UI owns the screen, the sound manager and the command loop.
type UI struct {
	screen tcell.Screen
	loop   *game.Loop
	sound  *SoundManager

	lastLines int
	wasOver   bool
}

func NewUI(g *game.Game, mute bool) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	ui := &UI{
		screen: screen,
		loop:   game.NewLoop(g, 64),
		sound:  NewSoundManager(),
	}

	if !mute {
		if err := ui.sound.Initialize(); err != nil {
			// No audio device is not fatal; play on silently.
			log.Printf("audio disabled: %v", err)
		}
	}

	ui.loop.Observe(ui.afterCommand)
	return ui, nil
}

func (ui *UI) Cleanup() {
	ui.sound.Cleanup()
	ui.screen.Fini()
}

// Run starts the loop goroutine and consumes keyboard events until quit.
func (ui *UI) Run(fallInterval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui.draw()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ui.loop.Run(ctx, fallInterval)
	}()

	for {
		ev := ui.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !ui.handleKey(ev) {
				cancel()
				<-done
				return
			}
		case *tcell.EventResize:
			// Repaint happens on the loop goroutine; the next applied
			// command (at the latest the gravity tick) redraws.
			ui.screen.Sync()
		}
	}
}

func (ui *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		ui.loop.Push(game.CmdLeft)
	case tcell.KeyRight:
		ui.loop.Push(game.CmdRight)
	case tcell.KeyDown:
		ui.loop.Push(game.CmdDown)
	case tcell.KeyUp:
		ui.loop.Push(game.CmdRotate)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			ui.loop.Push(game.CmdLeft)
		case 'l':
			ui.loop.Push(game.CmdRight)
		case 'j':
			ui.loop.Push(game.CmdDown)
		case 'k':
			ui.loop.Push(game.CmdRotate)
		case 'p':
			ui.loop.Push(game.CmdPause)
		case 'r':
			ui.loop.Push(game.CmdReset)
		}
	}
	return true
}

// afterCommand runs on the loop goroutine after every applied command:
// redraw, and cue audio on state edges.
func (ui *UI) afterCommand(game.Command) {
	g := ui.loop.Game()

	if lines := g.Lines(); lines > ui.lastLines {
		ui.sound.PlayClear(lines - ui.lastLines)
	}
	ui.lastLines = g.Lines()

	over := g.Over()
	if over && !ui.wasOver {
		ui.sound.PlayGameOver()
	}
	ui.wasOver = over

	ui.draw()
}

var kindStyles = [game.KindCount]tcell.Style{
	game.KindI: tcell.StyleDefault.Foreground(tcell.ColorAqua),
	game.KindJ: tcell.StyleDefault.Foreground(tcell.ColorBlue),
	game.KindL: tcell.StyleDefault.Foreground(tcell.ColorOrange),
	game.KindO: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	game.KindS: tcell.StyleDefault.Foreground(tcell.ColorGreen),
	game.KindT: tcell.StyleDefault.Foreground(tcell.ColorPurple),
	game.KindZ: tcell.StyleDefault.Foreground(tcell.ColorRed),
}

func (ui *UI) draw() {
	const (
		originX = 2 // board cells are two columns wide
		originY = 1
	)

	ui.screen.Clear()

	width, height := ui.screen.Size()
	if width < originX+game.BoardWidth*2+16 || height < originY+game.BoardHeight+2 {
		ui.drawText(0, 0, tcell.StyleDefault, "terminal too small")
		ui.screen.Show()
		return
	}

	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for y := 0; y <= game.BoardHeight; y++ {
		ui.screen.SetContent(originX-1, originY+y, '|', nil, borderStyle)
		ui.screen.SetContent(originX+game.BoardWidth*2, originY+y, '|', nil, borderStyle)
	}
	for x := -1; x <= game.BoardWidth*2; x++ {
		ui.screen.SetContent(originX+x, originY+game.BoardHeight, '-', nil, borderStyle)
	}

	g := ui.loop.Game()
	for y, row := range g.Snapshot() {
		for x, cell := range row {
			if !cell.Occupied {
				continue
			}
			style := kindStyles[cell.Kind]
			ui.screen.SetContent(originX+x*2, originY+y, '█', nil, style)
			ui.screen.SetContent(originX+x*2+1, originY+y, '█', nil, style)
		}
	}

	infoX := originX + game.BoardWidth*2 + 3
	ui.drawText(infoX, originY, tcell.StyleDefault, fmt.Sprintf("score %d", g.Score()))
	ui.drawText(infoX, originY+1, tcell.StyleDefault, fmt.Sprintf("lines %d", g.Lines()))

	switch g.Status() {
	case game.Paused:
		ui.drawText(infoX, originY+3, tcell.StyleDefault.Foreground(tcell.ColorYellow), "paused")
	case game.GameOver:
		ui.drawText(infoX, originY+3, tcell.StyleDefault.Foreground(tcell.ColorRed), "game over")
	}

	ui.drawText(infoX, originY+5, tcell.StyleDefault.Foreground(tcell.ColorGray), "p pause r reset q quit")

	ui.screen.Show()
}

func (ui *UI) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		ui.screen.SetContent(x+i, y, r, nil, style)
	}
}
