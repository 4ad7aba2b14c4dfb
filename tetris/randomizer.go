package tetris

import "math/rand/v2"

// Randomizer chooses the shape of every newly generated piece.
type Randomizer interface {
	Next() ShapeID
}

// RandomizerFunc adapts a plain function to the Randomizer interface.
type RandomizerFunc func() ShapeID

func (f RandomizerFunc) Next() ShapeID {
	return f()
}

// UniformRandomizer draws every shape independently with equal probability.
// Long streaks of the same shape are possible.
type UniformRandomizer struct {
	rng *rand.Rand
}

func NewUniformRandomizer(seed uint64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *UniformRandomizer) Next() ShapeID {
	return ShapeI + ShapeID(r.rng.IntN(ShapeCount))
}

// BagRandomizer deals the seven shapes in shuffled rounds, so every shape
// appears exactly once per seven pieces.
type BagRandomizer struct {
	rng *rand.Rand
	bag []ShapeID
}

func NewBagRandomizer(seed uint64) *BagRandomizer {
	return &BagRandomizer{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bag: make([]ShapeID, 0, ShapeCount),
	}
}

func (r *BagRandomizer) Next() ShapeID {
	if len(r.bag) == 0 {
		for s := range AllShapes() {
			r.bag = append(r.bag, s)
		}
		r.rng.Shuffle(len(r.bag), func(i, j int) {
			r.bag[i], r.bag[j] = r.bag[j], r.bag[i]
		})
	}

	s := r.bag[0]
	r.bag = r.bag[1:]
	return s
}

// SequenceRandomizer replays a fixed list of shapes, wrapping around at the end.
// It is mostly useful for reproducing a game in tests and tools.
type SequenceRandomizer struct {
	shapes []ShapeID
	pos    int
}

func NewSequenceRandomizer(shapes ...ShapeID) *SequenceRandomizer {
	if len(shapes) == 0 {
		panic("tetris: empty shape sequence")
	}
	for _, s := range shapes {
		if !s.Valid() {
			panic("tetris: invalid shape id " + s.String())
		}
	}
	return &SequenceRandomizer{shapes: shapes}
}

func (r *SequenceRandomizer) Next() ShapeID {
	s := r.shapes[r.pos]
	r.pos = (r.pos + 1) % len(r.shapes)
	return s
}
