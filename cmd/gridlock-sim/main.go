// Command gridlock-sim soak-tests the engine: it plays many games with a
// random command stream and reports telemetry, command timings and memory
// behavior.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/gridlock/game"
)

// maxTicksPerGame guards against a pathological command stream (for
// example one that pauses forever) stalling the run.
const maxTicksPerGame = 1 << 20

func main() {
	games := flag.Int("games", 100, "The number of games to play.")
	seed := flag.Uint64("seed", 1, "Random seed for pieces and the command stream.")
	memMetrics := flag.Bool("mem-metrics", false, "Enable detailed memory metrics in the report.")
	flag.Parse()

	log.Println("Starting gridlock simulation...")

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	recorder := game.NewRecorder()
	loop := game.NewLoop(game.New(game.WithRand(rng), game.WithRecorder(recorder)), 1)
	g := loop.Game()

	report := &Report{
		Games:      *games,
		Seed:       *seed,
		Recorder:   recorder,
		MemMetrics: *memMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Playing %d games...\n", *games)
	startTime := time.Now()

	for i := 0; i < *games; i++ {
		loop.Apply(game.CmdReset)

		ticks := 0
		for !g.Over() && ticks < maxTicksPerGame {
			// Roughly two steering commands per gravity step, with the
			// occasional pause toggle exercising the full state machine.
			switch rng.IntN(20) {
			case 0, 1, 2, 3:
				loop.Apply(game.CmdLeft)
			case 4, 5, 6, 7:
				loop.Apply(game.CmdRight)
			case 8, 9, 10:
				loop.Apply(game.CmdRotate)
			case 11, 12:
				loop.Apply(game.CmdDown)
				ticks++
			case 13:
				loop.Apply(game.CmdPause)
			default:
				loop.Apply(game.CmdTick)
				ticks++
			}
		}
		if g.Paused() {
			loop.Apply(game.CmdPause)
		}

		report.GameTicks.Add(int64(ticks))
		report.Scores.Add(int64(g.Score()))
	}

	report.TotalTime = time.Since(startTime)
	report.LoopStats = loop.Stats()
	report.GameTicks.Finalize()
	report.Scores.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
