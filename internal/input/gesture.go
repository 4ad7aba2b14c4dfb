package input

import "github.com/kamstrup/intmap"

// DefaultSwipeThreshold is the distance in pixels a touch must travel before
// it counts as a swipe rather than a tap.
const DefaultSwipeThreshold = 30

type touch struct {
	startX, startY int
	lastX, lastY   int
}

// Gestures tracks active touches and classifies each one when it ends.
type Gestures struct {
	Threshold int

	touches *intmap.Map[int, touch]
}

func NewGestures(threshold int) *Gestures {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Gestures{
		Threshold: threshold,
		touches:   intmap.New[int, touch](4),
	}
}

func (g *Gestures) Begin(id, x, y int) {
	g.touches.Put(id, touch{startX: x, startY: y, lastX: x, lastY: y})
}

// Move records the latest position of a touch. Unknown ids are ignored.
func (g *Gestures) Move(id, x, y int) {
	t, ok := g.touches.Get(id)
	if !ok {
		return
	}
	t.lastX, t.lastY = x, y
	g.touches.Put(id, t)
}

// End finishes a touch and returns the action it maps to. It returns false
// for ids that were never begun.
func (g *Gestures) End(id int) (Action, bool) {
	t, ok := g.touches.Get(id)
	if !ok {
		return ActionNone, false
	}
	g.touches.Del(id)
	return Classify(t.lastX-t.startX, t.lastY-t.startY, g.Threshold), true
}

// Active returns the number of touches in progress.
func (g *Gestures) Active() int {
	return g.touches.Len()
}

// Classify maps a touch displacement to an action. Movements no longer than
// threshold on both axes are taps and rotate. Otherwise the dominant axis
// decides: sideways swipes move, a downward swipe soft drops and an upward
// swipe rotates. Equal displacement counts as vertical.
func Classify(dx, dy, threshold int) Action {
	ax, ay := abs(dx), abs(dy)
	if max(ax, ay) <= threshold {
		return ActionRotate
	}

	if ax > ay {
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}

	if dy > 0 {
		return ActionSoftDrop
	}
	return ActionRotate
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
