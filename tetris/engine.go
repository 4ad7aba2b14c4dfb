package tetris

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=State

// State is the engine's lifecycle state.
type State uint8

// Engine states.
const (
	Running State = iota
	Paused
	GameOver
)

// MarshalText encodes the state by name, as used in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for candidate := Running; candidate <= GameOver; candidate++ {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Engine owns the board, the active and next pieces and the scoring state.
// It is not safe for concurrent use; callers serialize every call.
type Engine struct {
	rows, cols int
	board      *Board
	active     Piece
	next       Piece
	randomizer Randomizer
	listeners  []Listener
	logger     zerolog.Logger
	stats      *Stats

	score        int
	level        int
	lines        int
	dropInterval time.Duration
	dropStart    time.Time
	anchored     bool
	state        State
	version      uint64
}

// Option configures an Engine in New.
type Option func(*Engine)

// WithSize overrides the default 20×10 board.
func WithSize(rows, cols int) Option {
	if rows < 4 || cols < 4 {
		panic("tetris: board must be at least 4x4")
	}
	return func(e *Engine) {
		e.rows = rows
		e.cols = cols
	}
}

// WithRandomizer sets the source of new pieces. The default is a
// UniformRandomizer seeded from the clock.
func WithRandomizer(r Randomizer) Option {
	return func(e *Engine) {
		e.randomizer = r
	}
}

// WithLogger sets the logger used for game lifecycle events at debug level.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithListener registers fn to be called for every engine event.
func WithListener(fn Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, fn)
	}
}

// New creates an engine and starts a fresh game.
func New(opts ...Option) *Engine {
	e := &Engine{
		rows:   DefaultRows,
		cols:   DefaultCols,
		logger: zerolog.Nop(),
		stats:  newStats(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.randomizer == nil {
		e.randomizer = NewUniformRandomizer(uint64(time.Now().UnixNano()))
	}

	e.board = NewBoard(e.rows, e.cols)
	e.Reset()
	return e
}

// Reset discards the current game and starts a new one. It is accepted in
// every state.
func (e *Engine) Reset() {
	e.board.Reset()
	e.stats.reset()
	e.score = 0
	e.level = 1
	e.lines = 0
	e.dropInterval = BaseDropInterval
	e.anchored = false
	e.state = Running

	e.active = e.spawn()
	e.next = e.spawn()
	e.version++

	e.logger.Debug().
		Stringer("active", e.active.Shape).
		Stringer("next", e.next.Shape).
		Msg("game started")
}

func (e *Engine) spawn() Piece {
	shape := e.randomizer.Next()
	if !shape.Valid() {
		panic("tetris: randomizer produced invalid shape " + shape.String())
	}
	e.stats.recordSpawn(shape)
	return Spawn(shape, e.cols)
}

// Move translates the active piece by (dx, dy). It returns true when the
// piece moved. A blocked downward move locks the piece, clears rows, promotes
// the next piece and may end the game; it still returns false.
func (e *Engine) Move(dx, dy int) bool {
	if e.state != Running {
		return false
	}

	x, y := e.active.X+dx, e.active.Y+dy
	if e.board.IsValidPlacement(x, y, e.active.Matrix) {
		e.active.X = x
		e.active.Y = y
		e.version++
		return true
	}

	if dy > 0 {
		e.lockActive()
	}
	return false
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft() bool { return e.Move(-1, 0) }

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight() bool { return e.Move(1, 0) }

// SoftDrop moves the active piece down one row, locking it when blocked.
func (e *Engine) SoftDrop() bool { return e.Move(0, 1) }

// Rotate turns the active piece clockwise, trying the kick offsets in order.
// When no offset fits the piece is left exactly as it was.
func (e *Engine) Rotate() bool {
	if e.state != Running {
		return false
	}

	rotated, ok := e.board.Rotate(e.active)
	if !ok {
		return false
	}
	e.active = rotated
	e.version++
	return true
}

// HardDrop moves the active piece down until it locks and returns the number
// of rows it travelled.
func (e *Engine) HardDrop() int {
	rows := 0
	for e.Move(0, 1) {
		rows++
	}
	return rows
}

// Tick advances the fall timer to now. When at least one drop interval has
// elapsed since the last fall step the active piece descends one row and
// Tick returns true. The first tick after a new game or a resume only
// starts the timer.
func (e *Engine) Tick(now time.Time) bool {
	if e.state != Running {
		return false
	}

	if !e.anchored {
		e.dropStart = now
		e.anchored = true
		return false
	}

	if now.Sub(e.dropStart) < e.dropInterval {
		return false
	}

	e.dropStart = now
	e.Move(0, 1)
	return true
}

// Pause freezes the game. Only Resume, TogglePause and Reset are accepted
// while paused.
func (e *Engine) Pause() bool {
	if e.state != Running {
		return false
	}
	e.state = Paused
	e.version++
	return true
}

// Resume continues a paused game. The fall timer restarts with the next Tick.
func (e *Engine) Resume() bool {
	if e.state != Paused {
		return false
	}
	e.state = Running
	e.anchored = false
	e.version++
	return true
}

// TogglePause switches between Running and Paused. It does nothing once the
// game is over.
func (e *Engine) TogglePause() bool {
	switch e.state {
	case Running:
		return e.Pause()
	case Paused:
		return e.Resume()
	default:
		return false
	}
}

func (e *Engine) lockActive() {
	locked := e.active
	e.board.Lock(locked)
	rows := e.board.RemoveFullRows()
	e.stats.recordLock(rows)

	level := e.level
	points := 0
	if rows > 0 {
		points = e.award(rows)
	}

	e.emit(Event{Kind: EventLocked, Shape: locked.Shape, Rows: rows, Points: points, Score: e.score, Level: e.level})
	if rows > 0 {
		e.emit(Event{Kind: EventLinesCleared, Rows: rows, Points: points, Score: e.score, Level: e.level})
	}
	if e.level > level {
		e.emit(Event{Kind: EventLevelUp, Score: e.score, Level: e.level})
	}

	e.active = e.next
	e.next = e.spawn()
	e.version++

	if !e.board.IsValidPlacement(e.active.X, e.active.Y, e.active.Matrix) {
		e.state = GameOver
		e.logger.Debug().
			Int("score", e.score).
			Int("level", e.level).
			Int("lines", e.lines).
			Msg("game over")
		e.emit(Event{Kind: EventGameOver, Shape: e.active.Shape, Score: e.score, Level: e.level})
	}
}

// award adds the points for clearing rows lines and advances the level. It
// returns the points awarded.
func (e *Engine) award(rows int) int {
	points := Points(rows, e.level)
	e.score += points
	e.lines += rows

	e.logger.Debug().
		Int("rows", rows).
		Int("points", points).
		Int("score", e.score).
		Msg("lines cleared")

	if level := LevelForLines(e.lines); level > e.level {
		e.level = level
		e.dropInterval = DropIntervalForLevel(level)

		e.logger.Debug().
			Int("level", level).
			Dur("interval", e.dropInterval).
			Msg("level up")
	}
	return points
}

func (e *Engine) emit(ev Event) {
	for _, fn := range e.listeners {
		fn(ev)
	}
}

// Rows returns the board height in cells.
func (e *Engine) Rows() int { return e.rows }

// Cols returns the board width in cells.
func (e *Engine) Cols() int { return e.cols }

// Score returns the points scored in the current game.
func (e *Engine) Score() int { return e.score }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// Lines returns the number of lines cleared in the current game.
func (e *Engine) Lines() int { return e.lines }

// DropInterval returns the automatic fall period for the current level.
func (e *Engine) DropInterval() time.Duration { return e.dropInterval }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool { return e.state == GameOver }

// Paused reports whether the game is paused.
func (e *Engine) Paused() bool { return e.state == Paused }

// Stats returns the counters of the current game. They are reset with the
// engine.
func (e *Engine) Stats() *Stats { return e.stats }

// Version changes every time observable state changes. Collaborators use it
// to skip redundant redraws or publications.
func (e *Engine) Version() uint64 { return e.version }

// Board returns a copy of the playfield grid.
func (e *Engine) Board() [][]ShapeID { return e.board.Snapshot() }

// Active returns a copy of the falling piece.
func (e *Engine) Active() Piece { return e.active.Clone() }

// Next returns a copy of the preview piece.
func (e *Engine) Next() Piece { return e.next.Clone() }

// GhostY returns the row the active piece would lock at if hard dropped.
func (e *Engine) GhostY() int {
	return e.board.DropY(e.active)
}

// Snapshot is a self-contained copy of everything a renderer or status
// display needs.
type Snapshot struct {
	Rows         int                 `json:"rows"`
	Cols         int                 `json:"cols"`
	Board        [][]ShapeID         `json:"board"`
	Active       Piece               `json:"active"`
	Next         Piece               `json:"next"`
	GhostY       int                 `json:"ghostY"`
	Score        int                 `json:"score"`
	Level        int                 `json:"level"`
	Lines        int                 `json:"lines"`
	DropInterval time.Duration       `json:"dropInterval"`
	State        State               `json:"state"`
	Spawned      [ShapeCount + 1]int `json:"spawned"`
	Locks        int                 `json:"locks"`
	Version      uint64              `json:"version"`
}

// Snapshot returns a deep copy of the current game state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Rows:         e.rows,
		Cols:         e.cols,
		Board:        e.board.Snapshot(),
		Active:       e.active.Clone(),
		Next:         e.next.Clone(),
		GhostY:       e.GhostY(),
		Score:        e.score,
		Level:        e.level,
		Lines:        e.lines,
		DropInterval: e.dropInterval,
		State:        e.state,
		Locks:        e.stats.Locks(),
		Version:      e.version,
	}
	for shape := range AllShapes() {
		s.Spawned[shape] = e.stats.Spawned(shape)
	}
	return s
}
