// Package bot contains automated players. A bot looks at a snapshot when a
// new piece appears and answers with the actions to play for that piece.
package bot

import (
	"github.com/rs/zerolog"

	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/internal/loop"
	"github.com/plus3/blockfall/tetris"
)

type Bot interface {
	Decide(s tetris.Snapshot) []input.Action
}

// Func adapts a plain function to the Bot interface.
type Func func(s tetris.Snapshot) []input.Action

func (f Func) Decide(s tetris.Snapshot) []input.Action {
	return f(s)
}

// Driver is a frame loop system that asks a bot for a plan once per piece
// and queues the resulting actions. Register it ahead of the input system so
// the plan is applied in the same frame.
type Driver struct {
	Bot    Bot
	Engine *tetris.Engine
	Queue  *input.Queue
	// AutoRestart starts a new game as soon as one ends.
	AutoRestart bool
	Logger      zerolog.Logger

	planned   bool
	lastLocks int
	over      bool
	games     int
	decisions int
}

func (d *Driver) Name() string { return "BotDriver" }

func (d *Driver) Execute(frame *loop.Frame) {
	e := d.Engine

	switch e.State() {
	case tetris.Paused:
		return
	case tetris.GameOver:
		if !d.over {
			d.over = true
			d.games++
			d.Logger.Debug().
				Int("game", d.games).
				Int("score", e.Score()).
				Int("lines", e.Lines()).
				Msg("bot game finished")
		}
		if d.AutoRestart {
			d.Queue.Push(input.ActionRestart)
			d.planned = false
			d.over = false
		}
		return
	}

	locks := e.Stats().Locks()
	if d.planned && locks == d.lastLocks {
		return
	}
	d.planned = true
	d.lastLocks = locks

	d.decisions++
	for _, action := range d.Bot.Decide(e.Snapshot()) {
		d.Queue.Push(action)
	}
}

// Games returns the number of games that ended while the driver was running.
func (d *Driver) Games() int { return d.games }

// Decisions returns how many times the bot was asked for a plan.
func (d *Driver) Decisions() int { return d.decisions }
