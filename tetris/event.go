package tetris

// EventKind classifies engine notifications.
type EventKind uint8

const (
	EventLocked EventKind = iota + 1
	EventLinesCleared
	EventLevelUp
	EventGameOver
)

// Event describes something that happened during a lock sequence. Events of
// one lock are delivered in the order Locked, LinesCleared, LevelUp,
// GameOver, and all of them carry the score and level after the clear.
type Event struct {
	Kind  EventKind
	Shape ShapeID
	// Rows is the number of lines cleared by the lock.
	Rows int
	// Points awarded for the clear, scored at the level the clear happened on.
	Points int
	Score  int
	Level  int
}

// Listener receives engine events synchronously, on the caller's goroutine.
type Listener func(Event)
