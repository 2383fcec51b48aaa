package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/gridlock/game"
)

type Report struct {
	// Configuration
	Games int
	Seed  uint64

	// Results
	TotalTime  time.Duration
	GameTicks  IntStats
	Scores     IntStats
	Recorder   *game.Recorder
	LoopStats  game.LoopStats
	MemMetrics bool

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// IntStats accumulates integer samples and summarizes them.
type IntStats struct {
	Min     int64
	Max     int64
	Avg     int64
	Samples []int64
}

func (s *IntStats) Add(v int64) {
	s.Samples = append(s.Samples, v)
}

func (s *IntStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total int64
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / int64(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Gridlock Simulation Report

## Configuration
- **Games Played:** {{.Games}}
- **Seed:** {{.Seed}}
- **Total Time:** {{.TotalTime}}

## Game Length (gravity steps per game)
- **Min:** {{.GameTicks.Min}}
- **Max:** {{.GameTicks.Max}}
- **Avg:** {{.GameTicks.Avg}}

## Scores
- **Min:** {{.Scores.Min}}
- **Max:** {{.Scores.Max}}
- **Avg:** {{.Scores.Avg}}

## Telemetry
- **Pieces Locked:** {{.Recorder.Locks}}
- **Rows Cleared:** {{.Recorder.Lines}}
- **Games Over:** {{.Recorder.GamesOver}}

### Spawns by Kind
{{range $k := kinds}}- **{{$k}}:** {{$.Recorder.Spawns $k}}
{{end}}
### Clears by Size
{{range $n := clearSizes}}- **{{$n}} rows at once:** {{$.Recorder.Clears $n}}
{{end}}
## Command Timings
- **Total Commands:** {{.LoopStats.TotalExecutions}}
{{range .LoopStats.Commands}}- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
{{- if .MemMetrics}}
## Memory
- **Heap Alloc Start:** {{bytes .MemStatsStart.HeapAlloc}}
- **Heap Alloc End:** {{bytes .MemStatsEnd.HeapAlloc}}
- **Total Alloc:** {{bytes .MemStatsEnd.TotalAlloc}}
- **GC Cycles:** {{.MemStatsEnd.NumGC}}
{{- end}}
`

	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"kinds": func() []game.Kind {
			kinds := make([]game.Kind, 0, game.KindCount)
			for k := game.Kind(0); k < game.KindCount; k++ {
				kinds = append(kinds, k)
			}
			return kinds
		},
		"clearSizes": func() []int { return []int{1, 2, 3, 4} },
		"bytes": func(b uint64) string {
			return fmt.Sprintf("%.2f MB", float64(b)/(1024*1024))
		},
	}).Parse(reportTemplate))

	return tmpl.Execute(w, r)
}
