package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/plus3/tetra/piece"
	"github.com/plus3/tetra/playfield"
)

// ErrInvalidConfig is wrapped by every validation failure from New.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config describes the board, the pacing and the hooks of a game.
type Config struct {
	Columns      int
	Rows         int
	OverflowRows int

	// The tick interval at level n is BaseInterval - IntervalStep*(n-1),
	// never less than MinInterval.
	BaseInterval time.Duration
	IntervalStep time.Duration
	MinInterval  time.Duration

	// RoundsPerLevel is the number of clearing locks that advance the level.
	RoundsPerLevel int

	// Factory chooses the pieces. Nil means uniformly random kinds.
	Factory *piece.Factory
	// Clock drives gravity. Nil means SystemClock.
	Clock  Clock
	Logger *log.Logger

	// Hooks run after the engine has released its lock, in the order the
	// events happened, so they may read engine state.
	OnGameOver    func(score int)
	OnRowsCleared func(rows []int, removed []*playfield.Occupant)
	OnLevelUp     func(level int)
}

// DefaultConfig returns the classic 12 × 24 board with four overflow rows.
func DefaultConfig() Config {
	return Config{
		Columns:        12,
		Rows:           24,
		OverflowRows:   4,
		BaseInterval:   1000 * time.Millisecond,
		IntervalStep:   50 * time.Millisecond,
		MinInterval:    50 * time.Millisecond,
		RoundsPerLevel: 10,
	}
}

// Validate checks that a spawned piece fits on the board and that the tick
// interval can never reach zero.
func (c Config) Validate() error {
	// an I piece spawns at Columns/2 and is four wide
	if c.Columns-c.Columns/2 < 4 {
		return fmt.Errorf("%w: %d columns cannot fit a spawned piece", ErrInvalidConfig, c.Columns)
	}
	if c.Rows < 1 {
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, c.Rows)
	}
	// the tallest spawned shapes reach two rows above the spawn row
	if c.OverflowRows < 3 {
		return fmt.Errorf("%w: need at least 3 overflow rows, got %d", ErrInvalidConfig, c.OverflowRows)
	}
	if c.MinInterval <= 0 {
		return fmt.Errorf("%w: minimum interval must be positive", ErrInvalidConfig)
	}
	if c.BaseInterval < c.MinInterval {
		return fmt.Errorf("%w: base interval %s below minimum %s", ErrInvalidConfig, c.BaseInterval, c.MinInterval)
	}
	if c.IntervalStep < 0 {
		return fmt.Errorf("%w: negative interval step", ErrInvalidConfig)
	}
	if c.RoundsPerLevel < 1 {
		return fmt.Errorf("%w: rounds per level must be positive, got %d", ErrInvalidConfig, c.RoundsPerLevel)
	}
	return nil
}

// Interval returns the tick interval for level.
func (c Config) Interval(level int) time.Duration {
	d := c.BaseInterval - c.IntervalStep*time.Duration(level-1)
	return max(d, c.MinInterval)
}
