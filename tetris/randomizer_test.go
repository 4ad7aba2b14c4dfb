package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestUniformRandomizerCoversAllShapes(t *testing.T) {
	r := tetris.NewUniformRandomizer(42)
	counts := make(map[tetris.ShapeID]int)

	for range 7000 {
		s := r.Next()
		assert.True(t, s.Valid())
		counts[s]++
	}

	assert.Len(t, counts, tetris.ShapeCount)
	for shape, n := range counts {
		assert.Greater(t, n, 800, "shape %s drawn %d times", shape, n)
		assert.Less(t, n, 1200, "shape %s drawn %d times", shape, n)
	}
}

func TestUniformRandomizerIsSeeded(t *testing.T) {
	a := tetris.NewUniformRandomizer(99)
	b := tetris.NewUniformRandomizer(99)

	for range 100 {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestBagRandomizerDealsEveryShapePerBag(t *testing.T) {
	r := tetris.NewBagRandomizer(1)

	for bag := range 20 {
		seen := make(map[tetris.ShapeID]bool)
		for range tetris.ShapeCount {
			seen[r.Next()] = true
		}
		assert.Len(t, seen, tetris.ShapeCount, "bag %d", bag)
	}
}

func TestSequenceRandomizerWraps(t *testing.T) {
	r := tetris.NewSequenceRandomizer(tetris.ShapeI, tetris.ShapeO)

	assert.Equal(t, tetris.ShapeI, r.Next())
	assert.Equal(t, tetris.ShapeO, r.Next())
	assert.Equal(t, tetris.ShapeI, r.Next())

	assert.Panics(t, func() { tetris.NewSequenceRandomizer() })
	assert.Panics(t, func() { tetris.NewSequenceRandomizer(tetris.Empty) })
}

func TestEngineRejectsInvalidRandomizerOutput(t *testing.T) {
	assert.Panics(t, func() {
		tetris.New(tetris.WithRandomizer(tetris.RandomizerFunc(func() tetris.ShapeID {
			return tetris.Empty
		})))
	})
}
