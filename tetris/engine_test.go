package tetris_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(shapes ...tetris.ShapeID) *tetris.Engine {
	return tetris.New(tetris.WithRandomizer(tetris.NewSequenceRandomizer(shapes...)))
}

func TestNewEngine(t *testing.T) {
	engine := newEngine(tetris.ShapeT, tetris.ShapeO)

	assert.Equal(t, tetris.Running, engine.State())
	assert.Equal(t, 0, engine.Score())
	assert.Equal(t, 1, engine.Level())
	assert.Equal(t, 0, engine.Lines())
	assert.Equal(t, time.Second, engine.DropInterval())

	active := engine.Active()
	assert.Equal(t, tetris.ShapeT, active.Shape)
	assert.Equal(t, 4, active.X)
	assert.Equal(t, 0, active.Y)

	next := engine.Next()
	assert.Equal(t, tetris.ShapeO, next.Shape)
	assert.Equal(t, 4, next.X)
}

func TestSpawnCentersPiece(t *testing.T) {
	tests := []struct {
		shape tetris.ShapeID
		cols  int
		x     int
	}{
		{tetris.ShapeI, 10, 3},
		{tetris.ShapeO, 10, 4},
		{tetris.ShapeT, 10, 4},
		{tetris.ShapeI, 7, 1},
		{tetris.ShapeO, 7, 2},
		{tetris.ShapeS, 7, 2},
	}

	for _, tt := range tests {
		p := tetris.Spawn(tt.shape, tt.cols)
		assert.Equal(t, tt.x, p.X, "%s on %d columns", tt.shape, tt.cols)
		assert.Equal(t, 0, p.Y)
	}
}

func TestMoveWithinBounds(t *testing.T) {
	engine := newEngine(tetris.ShapeT)

	for range 4 {
		require.True(t, engine.MoveLeft())
	}
	assert.Equal(t, 0, engine.Active().X)

	version := engine.Version()
	assert.False(t, engine.MoveLeft())
	assert.Equal(t, 0, engine.Active().X)
	assert.Equal(t, version, engine.Version())

	for range 7 {
		require.True(t, engine.MoveRight())
	}
	assert.False(t, engine.MoveRight())
	assert.Equal(t, 7, engine.Active().X)
}

func TestBlockedSidewaysMoveHasNoSideEffects(t *testing.T) {
	engine := newEngine(tetris.ShapeO)
	for engine.MoveLeft() {
	}

	before := engine.Snapshot()
	assert.False(t, engine.Move(-1, 0))
	assert.Equal(t, before, engine.Snapshot())
}

func TestHardDropLocksPiece(t *testing.T) {
	engine := newEngine(tetris.ShapeO)

	assert.Equal(t, 18, engine.HardDrop())

	board := engine.Board()
	assert.Equal(t, tetris.ShapeO, board[18][4])
	assert.Equal(t, tetris.ShapeO, board[19][5])
	assert.Equal(t, 0, engine.Active().Y)
	assert.Equal(t, 1, engine.Stats().Locks())
	assert.Equal(t, 3, engine.Stats().Spawned(tetris.ShapeO))
	assert.Equal(t, tetris.Running, engine.State())
}

func TestHardDropEquivalentToRepeatedSoftDrops(t *testing.T) {
	shapes := []tetris.ShapeID{
		tetris.ShapeT, tetris.ShapeI, tetris.ShapeS, tetris.ShapeZ,
		tetris.ShapeL, tetris.ShapeJ, tetris.ShapeO,
	}
	hard := newEngine(shapes...)
	soft := newEngine(shapes...)

	for i := range 25 {
		for _, e := range []*tetris.Engine{hard, soft} {
			for range i % 3 {
				e.Rotate()
			}
			for range i % 5 {
				if i%2 == 0 {
					e.MoveLeft()
				} else {
					e.MoveRight()
				}
			}
		}

		hard.HardDrop()
		for soft.SoftDrop() {
		}

		require.Equal(t, hard.Board(), soft.Board(), "piece %d", i)
		require.Equal(t, hard.Score(), soft.Score())
		require.Equal(t, hard.State(), soft.State())
		if hard.GameOver() {
			break
		}
	}
}

func TestRotateInPlace(t *testing.T) {
	engine := newEngine(tetris.ShapeI)

	require.True(t, engine.Rotate())
	active := engine.Active()
	assert.Equal(t, 3, active.X)
	assert.Equal(t, 0, active.Y)
	assert.Equal(t, tetris.RotateClockwise(tetris.ShapeI.Matrix()), active.Matrix)

	// The shared definition is never touched by a rotation.
	assert.Equal(t, "....\n####\n....\n....", tetris.ShapeI.Matrix().String())
}

func TestRotateKicksRight(t *testing.T) {
	engine := newEngine(tetris.ShapeT)

	require.True(t, engine.Rotate())
	for engine.MoveLeft() {
	}
	require.Equal(t, -1, engine.Active().X)

	require.True(t, engine.Rotate())
	active := engine.Active()
	assert.Equal(t, 0, active.X)
	assert.Equal(t, 0, active.Y)
	assert.Equal(t, "...\n###\n.#.", active.Matrix.String())
}

func TestRotateKicksLeft(t *testing.T) {
	engine := newEngine(tetris.ShapeT)

	for range 3 {
		require.True(t, engine.Rotate())
	}
	for engine.MoveRight() {
	}
	require.Equal(t, 8, engine.Active().X)

	require.True(t, engine.Rotate())
	active := engine.Active()
	assert.Equal(t, 7, active.X)
	assert.True(t, tetris.ShapeT.Matrix().Equal(active.Matrix))
}

func TestRotateKicksUp(t *testing.T) {
	engine := newEngine(tetris.ShapeT)

	for range 18 {
		require.True(t, engine.SoftDrop())
	}

	require.True(t, engine.Rotate())
	active := engine.Active()
	assert.Equal(t, 4, active.X)
	assert.Equal(t, 17, active.Y)
}

func TestTickFallsAfterInterval(t *testing.T) {
	engine := newEngine(tetris.ShapeO)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, engine.Tick(start))
	assert.False(t, engine.Tick(start.Add(999*time.Millisecond)))
	assert.Equal(t, 0, engine.Active().Y)

	assert.True(t, engine.Tick(start.Add(time.Second)))
	assert.Equal(t, 1, engine.Active().Y)

	assert.False(t, engine.Tick(start.Add(1500*time.Millisecond)))
	assert.True(t, engine.Tick(start.Add(2*time.Second)))
	assert.Equal(t, 2, engine.Active().Y)
}

func TestTickLocksAtFloor(t *testing.T) {
	engine := newEngine(tetris.ShapeO)
	now := time.Unix(0, 0)
	engine.Tick(now)

	for range 19 {
		now = now.Add(time.Second)
		engine.Tick(now)
	}

	assert.Equal(t, 1, engine.Stats().Locks())
	assert.Equal(t, tetris.ShapeO, engine.Board()[19][4])
}

func TestPauseFreezesEngine(t *testing.T) {
	engine := newEngine(tetris.ShapeT)
	start := time.Unix(100, 0)
	engine.Tick(start)

	require.True(t, engine.Pause())
	assert.True(t, engine.Paused())
	assert.False(t, engine.Pause())

	before := engine.Snapshot()
	assert.False(t, engine.Tick(start.Add(10*time.Second)))
	assert.False(t, engine.MoveLeft())
	assert.False(t, engine.SoftDrop())
	assert.False(t, engine.Rotate())
	assert.Equal(t, 0, engine.HardDrop())
	assert.Equal(t, before, engine.Snapshot())

	require.True(t, engine.Resume())
	assert.False(t, engine.Resume())

	// The timer restarts from the first tick after resuming.
	assert.False(t, engine.Tick(start.Add(10*time.Second)))
	assert.False(t, engine.Tick(start.Add(10*time.Second+500*time.Millisecond)))
	assert.True(t, engine.Tick(start.Add(11*time.Second)))
	assert.Equal(t, 1, engine.Active().Y)
}

func TestTogglePause(t *testing.T) {
	engine := newEngine(tetris.ShapeT)

	assert.True(t, engine.TogglePause())
	assert.Equal(t, tetris.Paused, engine.State())
	assert.True(t, engine.TogglePause())
	assert.Equal(t, tetris.Running, engine.State())
}

func TestResetStartsOver(t *testing.T) {
	engine := newEngine(tetris.ShapeO, tetris.ShapeI)
	engine.HardDrop()
	engine.Pause()

	engine.Reset()

	assert.Equal(t, tetris.Running, engine.State())
	assert.Equal(t, 0, engine.Stats().Locks())
	for _, row := range engine.Board() {
		for _, cell := range row {
			assert.Equal(t, tetris.Empty, cell)
		}
	}
}

func TestBoardCellsAlwaysValid(t *testing.T) {
	engine := tetris.New(tetris.WithRandomizer(tetris.NewUniformRandomizer(7)))

	for i := 0; !engine.GameOver() && i < 500; i++ {
		switch i % 4 {
		case 0:
			engine.Rotate()
		case 1:
			engine.MoveLeft()
		case 2:
			engine.MoveRight()
		}
		engine.HardDrop()

		for _, row := range engine.Board() {
			for _, cell := range row {
				require.True(t, cell == tetris.Empty || cell.Valid())
			}
		}
	}
	assert.True(t, engine.GameOver())
}

func TestSnapshotIsolation(t *testing.T) {
	engine := newEngine(tetris.ShapeT)

	snapshot := engine.Snapshot()
	snapshot.Board[19][0] = tetris.ShapeZ
	snapshot.Active.Matrix[0][0] = true
	snapshot.Next.Matrix[0][0] = true

	assert.Equal(t, tetris.Empty, engine.Board()[19][0])
	assert.False(t, engine.Active().Matrix[0][0])
	assert.False(t, engine.Next().Matrix[0][0])
}

func TestSnapshotJSON(t *testing.T) {
	engine := newEngine(tetris.ShapeO)

	data, err := json.Marshal(engine.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Running", decoded["state"])
	assert.Equal(t, float64(18), decoded["ghostY"])
	assert.Equal(t, float64(1), decoded["level"])

	var roundTrip tetris.Snapshot
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, engine.Snapshot(), roundTrip)
}

func TestStateUnmarshalRejectsUnknown(t *testing.T) {
	var s tetris.State
	assert.Error(t, s.UnmarshalText([]byte("Sleeping")))
	require.NoError(t, s.UnmarshalText([]byte("GameOver")))
	assert.Equal(t, tetris.GameOver, s)
}

func TestListenerReceivesLocks(t *testing.T) {
	var events []tetris.Event
	engine := tetris.New(
		tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.ShapeO)),
		tetris.WithListener(func(ev tetris.Event) { events = append(events, ev) }),
	)

	engine.HardDrop()

	require.Len(t, events, 1)
	assert.Equal(t, tetris.EventLocked, events[0].Kind)
	assert.Equal(t, tetris.ShapeO, events[0].Shape)
	assert.Equal(t, 0, events[0].Rows)
}

func TestWithSize(t *testing.T) {
	engine := tetris.New(
		tetris.WithSize(8, 6),
		tetris.WithRandomizer(tetris.NewSequenceRandomizer(tetris.ShapeO)),
	)

	assert.Equal(t, 8, engine.Rows())
	assert.Equal(t, 6, engine.Cols())
	assert.Equal(t, 2, engine.Active().X)
	assert.Equal(t, 6, engine.HardDrop())

	assert.Panics(t, func() { tetris.WithSize(3, 10) })
}
