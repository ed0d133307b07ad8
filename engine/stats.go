package engine

import "time"

type command uint8

const (
	cmdTick command = iota
	cmdMoveLeft
	cmdMoveRight
	cmdRotateLeft
	cmdRotateRight
	cmdSoftDrop
	cmdHardDrop

	commandCount
)

var commandNames = [commandCount]string{
	cmdTick:        "Tick",
	cmdMoveLeft:    "MoveLeft",
	cmdMoveRight:   "MoveRight",
	cmdRotateLeft:  "RotateLeft",
	cmdRotateRight: "RotateRight",
	cmdSoftDrop:    "SoftDrop",
	cmdHardDrop:    "HardDrop",
}

// Stats provides counters about a game.
type Stats struct {
	TotalCommands int64
	PiecesLocked  int64
	LinesCleared  int64
	ClearEvents   int64
	Commands      []CommandStats
}

// CommandStats provides execution statistics for a single command, ticks
// included. A command is accepted when it moved or rotated the active piece.
type CommandStats struct {
	Name          string
	Issued        int64
	Accepted      int64
	Rejected      int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Command returns the stats entry with the given name.
func (s Stats) Command(name string) (CommandStats, bool) {
	for _, c := range s.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandStats{}, false
}

type commandStatsInternal struct {
	issued        int64
	accepted      int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

type statsRecorder struct {
	commands     [commandCount]commandStatsInternal
	piecesLocked int64
	linesCleared int64
	clearEvents  int64
}

func (r *statsRecorder) record(cmd command, accepted bool, d time.Duration) {
	s := &r.commands[cmd]
	if s.issued == 0 || d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
	s.issued++
	if accepted {
		s.accepted++
	}
	s.lastDuration = d
	s.totalDuration += d
}

func (r *statsRecorder) snapshot() Stats {
	stats := Stats{
		PiecesLocked: r.piecesLocked,
		LinesCleared: r.linesCleared,
		ClearEvents:  r.clearEvents,
		Commands:     make([]CommandStats, commandCount),
	}

	for i, internal := range r.commands {
		avg := time.Duration(0)
		if internal.issued > 0 {
			avg = internal.totalDuration / time.Duration(internal.issued)
		}

		stats.Commands[i] = CommandStats{
			Name:          commandNames[i],
			Issued:        internal.issued,
			Accepted:      internal.accepted,
			Rejected:      internal.issued - internal.accepted,
			MinDuration:   internal.minDuration,
			MaxDuration:   internal.maxDuration,
			AvgDuration:   avg,
			LastDuration:  internal.lastDuration,
			TotalDuration: internal.totalDuration,
		}
		stats.TotalCommands += internal.issued
	}

	return stats
}
