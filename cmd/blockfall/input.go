package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/input"
)

// keyboard turns ebiten key state into queued actions. Movement keys auto
// repeat while held.
type keyboard struct {
	queue    *input.Queue
	left     *input.Repeater
	right    *input.Repeater
	softDrop *input.Repeater
}

func newKeyboard(queue *input.Queue, cfg config.Config) *keyboard {
	return &keyboard{
		queue:    queue,
		left:     input.NewRepeater(cfg.RepeatDelay, cfg.RepeatRate),
		right:    input.NewRepeater(cfg.RepeatDelay, cfg.RepeatRate),
		softDrop: input.NewRepeater(0, cfg.RepeatRate),
	}
}

var pressActions = []struct {
	key    ebiten.Key
	action input.Action
}{
	{ebiten.KeyArrowUp, input.ActionRotate},
	{ebiten.KeySpace, input.ActionHardDrop},
	{ebiten.KeyP, input.ActionPause},
	{ebiten.KeyR, input.ActionRestart},
	{ebiten.KeyEnter, input.ActionRestart},
}

func (k *keyboard) Update(dt time.Duration) {
	k.repeat(k.left, ebiten.KeyArrowLeft, input.ActionLeft, dt)
	k.repeat(k.right, ebiten.KeyArrowRight, input.ActionRight, dt)
	k.repeat(k.softDrop, ebiten.KeyArrowDown, input.ActionSoftDrop, dt)

	for _, p := range pressActions {
		if inpututil.IsKeyJustPressed(p.key) {
			k.queue.Push(p.action)
		}
	}
}

func (k *keyboard) repeat(r *input.Repeater, key ebiten.Key, action input.Action, dt time.Duration) {
	for range r.Update(ebiten.IsKeyPressed(key), dt) {
		k.queue.Push(action)
	}
}

// Reset releases every held key, used while another consumer owns the
// keyboard.
func (k *keyboard) Reset() {
	k.left.Reset()
	k.right.Reset()
	k.softDrop.Reset()
}

// touchscreen classifies touches into swipes and taps.
type touchscreen struct {
	queue    *input.Queue
	gestures *input.Gestures
	ids      []ebiten.TouchID
}

func newTouchscreen(queue *input.Queue) *touchscreen {
	return &touchscreen{
		queue:    queue,
		gestures: input.NewGestures(input.DefaultSwipeThreshold),
	}
}

func (t *touchscreen) Update() {
	t.ids = inpututil.AppendJustPressedTouchIDs(t.ids[:0])
	for _, id := range t.ids {
		x, y := ebiten.TouchPosition(id)
		t.gestures.Begin(int(id), x, y)
	}

	t.ids = ebiten.AppendTouchIDs(t.ids[:0])
	for _, id := range t.ids {
		x, y := ebiten.TouchPosition(id)
		t.gestures.Move(int(id), x, y)
	}

	t.ids = inpututil.AppendJustReleasedTouchIDs(t.ids[:0])
	for _, id := range t.ids {
		if action, ok := t.gestures.End(int(id)); ok {
			t.queue.Push(action)
		}
	}
}
