// Package engine runs a falling-block game: it owns the playfield and the
// active piece, applies player commands and gravity ticks, clears rows and
// keeps score, level and round.
//
// All methods are safe for concurrent use. Commands and ticks are serialized,
// so the detach, test and reattach cycle of a move is never observed half
// done.
package engine

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tetra/piece"
	"github.com/plus3/tetra/playfield"
)

// Engine is a single game. It cannot be restarted; create a new Engine for a
// new game.
type Engine struct {
	mu sync.Mutex

	cfg     Config
	log     *log.Logger
	clock   Clock
	factory *piece.Factory
	field   *playfield.Playfield

	state     State
	gameID    uuid.UUID
	active    piece.Piece
	hasActive bool

	score int
	level int
	round int

	interval time.Duration
	timer    Timer
	// timerGen identifies the installed timer; callbacks from older timers
	// are dropped
	timerGen uint64

	stats statsRecorder
	notes notifications
}

// New validates cfg and returns an engine waiting for Start.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		log:      cfg.Logger,
		clock:    cfg.Clock,
		factory:  cfg.Factory,
		level:    1,
		round:    1,
		interval: cfg.Interval(1),
	}
	if e.log == nil {
		e.log = log.New(io.Discard, "", 0)
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.factory == nil {
		e.factory = piece.NewFactory(nil)
	}
	return e, nil
}

// Start allocates an empty board, spawns the first piece and starts gravity.
// It does nothing once the game has started or ended.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != NotStarted {
		return
	}

	e.field = playfield.New(e.cfg.Columns, e.cfg.Rows, e.cfg.OverflowRows)
	e.gameID = uuid.New()
	e.score, e.level, e.round = 0, 1, 1
	e.interval = e.cfg.Interval(1)
	e.state = Running

	e.spawn()
	e.installTimer()

	e.log.Printf("game %s started on a %dx%d board, tick %s", e.gameID, e.cfg.Columns, e.cfg.Rows, e.interval)
}

// Stop ends a running game as if the stack had overflowed.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != Running {
		e.mu.Unlock()
		return
	}
	e.gameOver()
	calls := e.notes.take()
	e.mu.Unlock()

	flush(calls)
}

// MoveLeft shifts the active piece one column left if the cells are free.
func (e *Engine) MoveLeft() {
	e.exec(cmdMoveLeft, 0, func() bool { return e.shift(left) })
}

// MoveRight shifts the active piece one column right if the cells are free.
func (e *Engine) MoveRight() {
	e.exec(cmdMoveRight, 0, func() bool { return e.shift(right) })
}

// RotateLeft turns the active piece counter-clockwise if the cells are free.
func (e *Engine) RotateLeft() {
	e.exec(cmdRotateLeft, 0, func() bool { return e.shift(piece.Piece.Rotate) })
}

// RotateRight turns the active piece clockwise if the cells are free.
func (e *Engine) RotateRight() {
	e.exec(cmdRotateRight, 0, func() bool { return e.shift(piece.Piece.RotateCW) })
}

// SoftDrop moves the active piece down one row, locking it if it cannot move.
func (e *Engine) SoftDrop() {
	e.exec(cmdSoftDrop, 0, e.fall)
}

// HardDrop drops the active piece as far as it goes and locks it.
func (e *Engine) HardDrop() {
	e.exec(cmdHardDrop, 0, e.drop)
}

// Tick applies one step of gravity. The engine's timer calls it on its own;
// exposing it lets a caller drive the game without a clock.
func (e *Engine) Tick() {
	e.exec(cmdTick, 0, e.fall)
}

func (e *Engine) onTimer(gen uint64) {
	e.exec(cmdTick, gen, e.fall)
}

// exec runs step under the lock if the game is running. A non-zero gen marks a
// timer callback, which is dropped unless it belongs to the current timer.
func (e *Engine) exec(cmd command, gen uint64, step func() bool) {
	e.mu.Lock()
	if e.state != Running || (gen != 0 && gen != e.timerGen) {
		e.mu.Unlock()
		return
	}

	start := time.Now()
	accepted := step()
	e.stats.record(cmd, accepted, time.Since(start))

	calls := e.notes.take()
	e.mu.Unlock()

	flush(calls)
}

func left(p piece.Piece) piece.Piece  { return p.Translate(-1, 0) }
func right(p piece.Piece) piece.Piece { return p.Translate(1, 0) }
func down(p piece.Piece) piece.Piece  { return p.Translate(0, -1) }

// shift detaches the active piece, tries the transformed candidate and
// reattaches the occupants at whichever placement won.
func (e *Engine) shift(transform func(piece.Piece) piece.Piece) bool {
	if !e.hasActive {
		return false
	}

	occupants := e.field.ClearCells(e.active)
	candidate := transform(e.active)
	ok := !e.field.Collides(candidate)
	if ok {
		e.active = candidate
	}
	e.field.WriteCells(e.active, occupants)
	return ok
}

func (e *Engine) fall() bool {
	if !e.hasActive {
		e.spawn()
		return true
	}
	if e.shift(down) {
		return true
	}
	e.lock()
	return false
}

func (e *Engine) drop() bool {
	if !e.hasActive {
		return false
	}

	occupants := e.field.ClearCells(e.active)
	moved := false
	for {
		candidate := down(e.active)
		if e.field.Collides(candidate) {
			break
		}
		e.active = candidate
		moved = true
	}
	e.field.WriteCells(e.active, occupants)

	e.lock()
	return moved
}

// lock fixes the active piece in place. A piece resting in the overflow rows
// ends the game; otherwise full rows are cleared and the next piece spawns.
func (e *Engine) lock() {
	e.stats.piecesLocked++

	for _, c := range e.active.Cells() {
		if c.Y >= e.cfg.Rows {
			e.gameOver()
			return
		}
	}

	e.clearRows()
	e.hasActive = false
	e.spawn()
}

func (e *Engine) clearRows() {
	rows := e.field.FullRows()
	if len(rows) == 0 {
		return
	}

	removed := e.field.ClearAndCompactRows(rows)
	e.score += Points(len(rows), e.level)
	e.stats.linesCleared += int64(len(rows))
	e.stats.clearEvents++

	if hook := e.cfg.OnRowsCleared; hook != nil {
		e.notes.push(func() { hook(rows, removed) })
	}

	e.round++
	if e.round > e.cfg.RoundsPerLevel {
		e.level++
		e.round = 1
		e.interval = e.cfg.Interval(e.level)
		e.installTimer()

		e.log.Printf("game %s reached level %d, tick %s", e.gameID, e.level, e.interval)
		if hook := e.cfg.OnLevelUp; hook != nil {
			level := e.level
			e.notes.push(func() { hook(level) })
		}
	}
}

func (e *Engine) spawn() {
	e.active = e.factory.Spawn(e.cfg.Columns, e.cfg.Rows)
	e.hasActive = true
	e.field.Place(e.active)
}

func (e *Engine) gameOver() {
	e.stopTimer()
	e.state = Stopped
	e.hasActive = false

	e.log.Printf("game %s over: score %d, level %d, round %d", e.gameID, e.score, e.level, e.round)
	if hook := e.cfg.OnGameOver; hook != nil {
		score := e.score
		e.notes.push(func() { hook(score) })
	}
}

// installTimer replaces the gravity timer with one at the current interval.
// The old timer is stopped before the new one exists.
func (e *Engine) installTimer() {
	e.stopTimer()
	gen := e.timerGen
	e.timer = e.clock.Every(e.interval, func() { e.onTimer(gen) })
}

func (e *Engine) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.timerGen++
}

// Score returns the current score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Level returns the current level, starting at 1.
func (e *Engine) Level() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Round returns the clearing round within the level, from 1 to
// RoundsPerLevel.
func (e *Engine) Round() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round
}

// IsRunning reports whether the game has started and not yet ended.
func (e *Engine) IsRunning() bool {
	return e.State() == Running
}

// State returns where the game is in its lifecycle.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Interval returns the current gravity interval.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// GameID returns the id assigned at Start, or uuid.Nil before.
func (e *Engine) GameID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameID
}

// Active returns the falling piece, if there is one.
func (e *Engine) Active() (piece.Piece, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active, e.hasActive
}

// NextKind returns the kind of the piece that spawns after the active one.
func (e *Engine) NextKind() piece.Kind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.factory.Peek()
}

// Stats returns a snapshot of the game's counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.snapshot()
}

// ForEachOccupiedCell calls fn for every occupied cell, the active piece
// included. The board is copied first, so fn may call back into the engine.
func (e *Engine) ForEachOccupiedCell(fn func(col, row int, color piece.Color)) {
	type cell struct {
		col, row int
		color    piece.Color
	}

	e.mu.Lock()
	if e.field == nil {
		e.mu.Unlock()
		return
	}
	cells := make([]cell, 0, e.field.Len())
	e.field.ForEachOccupied(func(col, row int, o *playfield.Occupant) {
		cells = append(cells, cell{col, row, o.Color()})
	})
	e.mu.Unlock()

	for _, c := range cells {
		fn(c.col, c.row, c.color)
	}
}
