package game

import (
	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/internal/loop"
	"github.com/plus3/blockfall/tetris"
)

// InputSystem applies every queued action to the engine in arrival order.
type InputSystem struct {
	Engine *tetris.Engine
	Queue  *input.Queue
	Logger zerolog.Logger

	pending []input.Action
}

func (s *InputSystem) Execute(frame *loop.Frame) {
	s.pending = s.Queue.Drain(s.pending[:0])
	for _, action := range s.pending {
		if !Apply(s.Engine, action) {
			s.Logger.Trace().Stringer("action", action).Msg("action ignored")
		}
	}
}

// GravitySystem advances the fall timer.
type GravitySystem struct {
	Engine *tetris.Engine
}

func (s *GravitySystem) Execute(frame *loop.Frame) {
	s.Engine.Tick(frame.Now)
}

// PublishSystem snapshots the engine whenever it changed and hands the
// snapshot to the session's sinks once the frame is complete. Scheduler
// statistics are captured at the same point, so they include this frame.
type PublishSystem struct {
	session *Session
	version uint64
}

func (s *PublishSystem) Execute(frame *loop.Frame) {
	sess := s.session

	changed := false
	var snapshot tetris.Snapshot
	if v := sess.engine.Version(); v != s.version {
		s.version = v
		snapshot = sess.engine.Snapshot()
		changed = true

		sess.mu.Lock()
		sess.latest = snapshot
		sess.mu.Unlock()
	}

	frame.Commands.Defer(func() {
		stats := sess.scheduler.Stats()
		sess.mu.Lock()
		sess.stats = stats
		sess.mu.Unlock()

		if !changed {
			return
		}
		for _, sink := range sess.sinks {
			sink.Publish(snapshot)
		}
	})
}

// Apply performs a single action on the engine and reports whether it had
// any effect. Restart resumes a paused game instead of starting over.
func Apply(e *tetris.Engine, action input.Action) bool {
	switch action {
	case input.ActionLeft:
		return e.MoveLeft()
	case input.ActionRight:
		return e.MoveRight()
	case input.ActionSoftDrop:
		return e.SoftDrop()
	case input.ActionRotate:
		return e.Rotate()
	case input.ActionHardDrop:
		if e.State() != tetris.Running {
			return false
		}
		e.HardDrop()
		return true
	case input.ActionPause:
		return e.TogglePause()
	case input.ActionRestart:
		if e.Paused() {
			return e.Resume()
		}
		e.Reset()
		return true
	default:
		return false
	}
}
