package game

import "github.com/kamstrup/intmap"

// Recorder accumulates engine telemetry: spawns per piece kind, line
// clears bucketed by how many rows went at once, and overall counters.
// A Recorder observes a single Game from a single goroutine, the same
// single-writer rule as the Game itself.
type Recorder struct {
	spawns    *intmap.Map[int64, int64]
	clears    *intmap.Map[int64, int64]
	ticks     int64
	locks     int64
	gamesOver int64
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		spawns: intmap.New[int64, int64](int(KindCount)),
		clears: intmap.New[int64, int64](8),
	}
}

func (r *Recorder) tick() { r.ticks++ }

func (r *Recorder) lock(Kind) { r.locks++ }

func (r *Recorder) gameOver() { r.gamesOver++ }

func (r *Recorder) spawn(k Kind) { r.bump(r.spawns, int64(k)) }

func (r *Recorder) clear(n int) { r.bump(r.clears, int64(n)) }

func (r *Recorder) bump(m *intmap.Map[int64, int64], key int64) {
	n, _ := m.Get(key)
	m.Put(key, n+1)
}

// Ticks returns how many gravity steps were applied.
func (r *Recorder) Ticks() int64 { return r.ticks }

// Locks returns how many pieces merged into the board.
func (r *Recorder) Locks() int64 { return r.locks }

// GamesOver returns how many terminal spawn collisions were observed.
func (r *Recorder) GamesOver() int64 { return r.gamesOver }

// Spawns returns how many pieces of the given kind were spawned.
func (r *Recorder) Spawns(k Kind) int64 {
	n, _ := r.spawns.Get(int64(k))
	return n
}

// Clears returns how many times exactly n rows cleared simultaneously.
func (r *Recorder) Clears(n int) int64 {
	c, _ := r.clears.Get(int64(n))
	return c
}

// Lines returns the total rows cleared across all bucket sizes.
func (r *Recorder) Lines() int64 {
	var total int64
	for n := 1; n <= 4; n++ {
		total += int64(n) * r.Clears(n)
	}
	return total
}
