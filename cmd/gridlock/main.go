package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/gridlock/debugui"
	debugui_ebiten "github.com/plus3/gridlock/debugui/ebiten"
	"github.com/plus3/gridlock/game"
)

const (
	screenWidth  = 500
	screenHeight = 700
)

func main() {
	fallInterval := flag.Duration("fall", time.Second, "Gravity interval between automatic down steps.")
	seed := flag.Uint64("seed", 0, "Random seed for piece selection (0 uses a random seed).")
	debug := flag.Bool("debug", false, "Mount the ImGui debug overlay.")
	flag.Parse()

	opts := []game.Option{}
	recorder := game.NewRecorder()
	opts = append(opts, game.WithRecorder(recorder))
	if *seed != 0 {
		opts = append(opts, game.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}

	app := &App{
		game:         game.New(opts...),
		recorder:     recorder,
		fallInterval: fallInterval.Seconds(),
		repeatDelay:  0.2,
		repeatRate:   0.05,
	}

	if *debug {
		app.imguiBackend = debugui_ebiten.New("gridlock", screenWidth, screenHeight)
		app.stateWindow = debugui.NewStateWindow(120)
		app.frameTimer = debugui.NewFrameTimer()
	} else {
		ebiten.SetWindowSize(screenWidth, screenHeight)
		ebiten.SetWindowTitle("gridlock")
	}

	if err := ebiten.RunGame(app); err != nil {
		log.Fatalf("gridlock: %v", err)
	}
}
