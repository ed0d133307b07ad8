package engine

//go:generate go tool stringer -type=State

// State is the lifecycle stage of a game. It only ever moves forward.
type State uint8

const (
	NotStarted State = iota
	Running
	Stopped
)
