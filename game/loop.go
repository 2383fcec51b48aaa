package game

import (
	"context"
	"sync/atomic"
	"time"
)

// Command is one discrete engine operation. The gravity ticker and the
// host's input handlers both reduce to commands, so a single consumer
// can apply them in arrival order.
type Command uint8

const (
	CmdTick Command = iota
	CmdLeft
	CmdRight
	CmdDown
	CmdRotate
	CmdPause
	CmdReset
)

func (c Command) String() string {
	switch c {
	case CmdTick:
		return "tick"
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdDown:
		return "down"
	case CmdRotate:
		return "rotate"
	case CmdPause:
		return "pause"
	case CmdReset:
		return "reset"
	default:
		return "unknown"
	}
}

// CommandStats tracks execution counts and durations per command, in the
// shape hosts and the simulator report on.
type CommandStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	TotalDuration  time.Duration
}

// LoopStats summarizes a Loop's execution history.
type LoopStats struct {
	TotalExecutions int64
	Dropped         int64
	Commands        []CommandStats
}

type commandStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
}

const commandCount = int(CmdReset) + 1

// Loop serializes commands from multiple producers into a single
// consumer that owns a Game. Producers call Push; the goroutine running
// Run (or a test calling Apply directly) is the only writer the Game
// ever sees.
type Loop struct {
	game     *Game
	commands chan Command
	observer func(Command)
	dropped  atomic.Int64
	stats    [commandCount]commandStatsInternal
}

// NewLoop wraps a game with a command queue of the given depth.
func NewLoop(g *Game, depth int) *Loop {
	l := &Loop{
		game:     g,
		commands: make(chan Command, depth),
	}
	for i := range l.stats {
		l.stats[i].minDuration = time.Duration(1<<63 - 1)
	}
	return l
}

// Game returns the wrapped game. Callers outside the loop goroutine must
// treat it as read-only while Run is active.
func (l *Loop) Game() *Game { return l.game }

// Observe registers a callback invoked on the consumer goroutine after
// every applied command. Must be set before Run starts.
func (l *Loop) Observe(fn func(Command)) { l.observer = fn }

// Push enqueues a command without blocking. When the queue is full the
// command is dropped and counted; a lost keypress is harmless, a stalled
// producer is not.
func (l *Loop) Push(cmd Command) {
	select {
	case l.commands <- cmd:
	default:
		l.dropped.Add(1)
	}
}

// Apply dispatches one command synchronously against the owned game.
func (l *Loop) Apply(cmd Command) {
	start := time.Now()

	switch cmd {
	case CmdTick, CmdDown:
		l.game.Tick()
	case CmdLeft:
		l.game.MoveLeft()
	case CmdRight:
		l.game.MoveRight()
	case CmdRotate:
		l.game.Rotate()
	case CmdPause:
		l.game.TogglePause()
	case CmdReset:
		l.game.Reset()
	default:
		return
	}

	duration := time.Since(start)
	stats := &l.stats[cmd]
	stats.executionCount++
	stats.totalDuration += duration
	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}

	if l.observer != nil {
		l.observer(cmd)
	}
}

// Run drains the queue and fires a gravity tick at the given interval
// until the context is cancelled. Queued commands are applied before
// each tick so input observed earlier is never reordered after gravity.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-l.commands:
			l.Apply(cmd)
		case <-ticker.C:
			l.drain()
			l.Apply(CmdTick)
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case cmd := <-l.commands:
			l.Apply(cmd)
		default:
			return
		}
	}
}

// Stats returns a snapshot of execution statistics. Call from the
// consumer goroutine, or after Run has returned.
func (l *Loop) Stats() LoopStats {
	out := LoopStats{Dropped: l.dropped.Load()}
	for i := range l.stats {
		internal := &l.stats[i]
		if internal.executionCount == 0 {
			continue
		}
		avg := internal.totalDuration / time.Duration(internal.executionCount)
		out.Commands = append(out.Commands, CommandStats{
			Name:           Command(i).String(),
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			TotalDuration:  internal.totalDuration,
		})
		out.TotalExecutions += internal.executionCount
	}
	return out
}
