package bot

import (
	"math/rand/v2"

	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/tetris"
)

// RandomBot rotates and shifts every piece by a random amount and hard
// drops it.
type RandomBot struct {
	rng *rand.Rand
}

func NewRandomBot(seed uint64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))}
}

func (b *RandomBot) Decide(s tetris.Snapshot) []input.Action {
	var actions []input.Action
	for range b.rng.IntN(4) {
		actions = append(actions, input.ActionRotate)
	}

	shift := b.rng.IntN(s.Cols) - s.Cols/2
	step := input.ActionRight
	if shift < 0 {
		step = input.ActionLeft
		shift = -shift
	}
	for range shift {
		actions = append(actions, step)
	}

	return append(actions, input.ActionHardDrop)
}
