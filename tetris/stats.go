package tetris

import "github.com/kamstrup/intmap"

// Stats accumulates per-game counters. It is reset together with the engine.
type Stats struct {
	spawned *intmap.Map[ShapeID, int]
	clears  *intmap.Map[int, int]
	locks   int
}

func newStats() *Stats {
	s := &Stats{}
	s.reset()
	return s
}

func (s *Stats) reset() {
	s.spawned = intmap.New[ShapeID, int](ShapeCount)
	s.clears = intmap.New[int, int](len(lineClearPoints))
	s.locks = 0
}

func (s *Stats) recordSpawn(shape ShapeID) {
	n, _ := s.spawned.Get(shape)
	s.spawned.Put(shape, n+1)
}

func (s *Stats) recordLock(rows int) {
	s.locks++
	if rows > 0 {
		n, _ := s.clears.Get(rows)
		s.clears.Put(rows, n+1)
	}
}

// Spawned returns how many pieces of shape have been generated this game,
// including the one waiting in the preview.
func (s *Stats) Spawned(shape ShapeID) int {
	n, _ := s.spawned.Get(shape)
	return n
}

// Clears returns how many lock events cleared exactly rows lines.
func (s *Stats) Clears(rows int) int {
	n, _ := s.clears.Get(rows)
	return n
}

// Locks returns the number of pieces locked into the board.
func (s *Stats) Locks() int {
	return s.locks
}
