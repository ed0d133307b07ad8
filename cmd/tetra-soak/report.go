package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tetra/engine"
)

type Game struct {
	ID    string
	Score int
	Level int
	Stats engine.Stats
}

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     uint64
	Columns  int
	Rows     int

	// Results
	Games         int
	BestGame      Game
	TotalScore    int
	MaxLevel      int
	PiecesLocked  int64
	LinesCleared  int64
	Commands      []engine.CommandStats
	TotalTime     time.Duration
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Add folds one finished game into the report.
func (r *Report) Add(g Game) {
	r.Games++
	r.TotalScore += g.Score
	r.PiecesLocked += g.Stats.PiecesLocked
	r.LinesCleared += g.Stats.LinesCleared
	if r.Games == 1 || g.Score > r.BestGame.Score {
		r.BestGame = g
	}
	r.MaxLevel = max(r.MaxLevel, g.Level)

	if r.Commands == nil {
		r.Commands = make([]engine.CommandStats, len(g.Stats.Commands))
	}
	for i, c := range g.Stats.Commands {
		acc := &r.Commands[i]
		if acc.Issued == 0 || (c.Issued > 0 && c.MinDuration < acc.MinDuration) {
			acc.MinDuration = c.MinDuration
		}
		acc.Name = c.Name
		acc.Issued += c.Issued
		acc.Accepted += c.Accepted
		acc.Rejected += c.Rejected
		acc.MaxDuration = max(acc.MaxDuration, c.MaxDuration)
		acc.TotalDuration += c.TotalDuration
		if acc.Issued > 0 {
			acc.AvgDuration = acc.TotalDuration / time.Duration(acc.Issued)
		}
	}
}

// AvgScore returns the mean final score.
func (r *Report) AvgScore() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.Games)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Board:** {{.Columns}} x {{.Rows}}

## Games
- **Games Played:** {{.Games}}
- **Average Score:** {{printf "%.1f" .AvgScore}}
- **Best Score:** {{.BestGame.Score}} (game {{.BestGame.ID}})
- **Highest Level:** {{.MaxLevel}}
- **Pieces Locked:** {{.PiecesLocked}}
- **Lines Cleared:** {{.LinesCleared}}
- **Total Time:** {{.TotalTime}}

## Commands
| command | issued | accepted | rejected | avg | min | max |
|---------|--------|----------|----------|-----|-----|-----|
{{- range .Commands}}
| {{.Name}} | {{.Issued}} | {{.Accepted}} | {{.Rejected}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
