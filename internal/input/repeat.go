package input

import "time"

// Default auto-repeat timings for held movement keys.
const (
	DefaultRepeatDelay = 200 * time.Millisecond
	DefaultRepeatRate  = 50 * time.Millisecond
)

// Repeater turns a held key into a stream of actions: one on press, then one
// every Rate once the key has been held longer than Delay.
type Repeater struct {
	Delay time.Duration
	Rate  time.Duration

	down bool
	held time.Duration
}

func NewRepeater(delay, rate time.Duration) *Repeater {
	return &Repeater{Delay: delay, Rate: rate}
}

// Update advances the repeater by dt and returns how many times the action
// fires this frame.
func (r *Repeater) Update(pressed bool, dt time.Duration) int {
	if !pressed {
		r.Reset()
		return 0
	}

	if !r.down {
		r.down = true
		r.held = 0
		return 1
	}

	if r.Rate <= 0 {
		return 0
	}

	r.held += dt
	fired := 0
	for r.held > r.Delay {
		r.held -= r.Rate
		fired++
	}
	return fired
}

func (r *Repeater) Reset() {
	r.down = false
	r.held = 0
}
