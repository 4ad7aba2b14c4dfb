package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/internal/loop"
)

type countingSystem struct {
	ExecuteCount int
	LastDelta    float64
	order        *[]string
	name         string
}

func (s *countingSystem) Execute(frame *loop.Frame) {
	s.ExecuteCount++
	s.LastDelta = frame.DeltaTime
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
}

type namedSystem struct{}

func (namedSystem) Execute(*loop.Frame) {}
func (namedSystem) Name() string      { return "Named" }

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var order []string
		scheduler := loop.NewScheduler()
		scheduler.Register(&countingSystem{order: &order, name: "input"})
		scheduler.Register(&countingSystem{order: &order, name: "gravity"})
		scheduler.Register(&countingSystem{order: &order, name: "publish"})

		scheduler.Once(time.Unix(0, 0))
		scheduler.Once(time.Unix(1, 0))

		assert.Equal(t, []string{"input", "gravity", "publish", "input", "gravity", "publish"}, order)
	})

	t.Run("delta time is measured between frames", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		system := &countingSystem{}
		scheduler.Register(system)

		start := time.Unix(100, 0)
		scheduler.Once(start)
		assert.Zero(t, system.LastDelta)

		scheduler.Once(start.Add(250 * time.Millisecond))
		assert.InDelta(t, 0.25, system.LastDelta, 1e-9)
	})

	t.Run("frame index increments", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var indices []int64
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			indices = append(indices, frame.Index)
		}))

		now := time.Now()
		for i := range 3 {
			scheduler.Once(now.Add(time.Duration(i) * time.Millisecond))
		}
		assert.Equal(t, []int64{0, 1, 2}, indices)
	})

	t.Run("deferred commands run after every system", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var order []string
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			frame.Commands.Defer(func() { order = append(order, "deferred") })
			order = append(order, "first")
		}))
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			order = append(order, "second")
		}))

		scheduler.Once(time.Now())
		assert.Equal(t, []string{"first", "second", "deferred"}, order)
	})

	t.Run("deferred commands see the frame counted", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		var seen []int64
		scheduler.Register(loop.SystemFunc(func(frame *loop.Frame) {
			frame.Commands.Defer(func() {
				stats := scheduler.Stats()
				seen = append(seen, stats.Frames, stats.Systems[0].ExecutionCount)
			})
		}))

		now := time.Now()
		scheduler.Once(now)
		scheduler.Once(now.Add(time.Millisecond))
		assert.Equal(t, []int64{1, 1, 2, 2}, seen)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := loop.NewScheduler()
		system := &countingSystem{}
		scheduler.Register(system)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after cancellation")
		}
		assert.Positive(t, system.ExecuteCount)
	})
}

func TestSchedulerStats(t *testing.T) {
	scheduler := loop.NewScheduler()
	scheduler.Register(&countingSystem{})
	scheduler.Register(namedSystem{})
	scheduler.Register(loop.SystemFunc(func(*loop.Frame) {}))

	stats := scheduler.Stats()
	require.Len(t, stats.Systems, 3)
	assert.Zero(t, stats.Systems[0].MinDuration)
	assert.Zero(t, stats.Frames)

	now := time.Now()
	for i := range 5 {
		scheduler.Once(now.Add(time.Duration(i) * time.Millisecond))
	}

	stats = scheduler.Stats()
	assert.Equal(t, 3, stats.SystemCount)
	assert.Equal(t, int64(5), stats.Frames)
	assert.Equal(t, "countingSystem", stats.Systems[0].Name)
	assert.Equal(t, "Named", stats.Systems[1].Name)
	assert.Equal(t, "SystemFunc", stats.Systems[2].Name)

	for _, system := range stats.Systems {
		assert.Equal(t, int64(5), system.ExecutionCount)
		assert.LessOrEqual(t, system.MinDuration, system.AvgDuration)
		assert.LessOrEqual(t, system.AvgDuration, system.MaxDuration)
		assert.GreaterOrEqual(t, system.TotalDuration, system.MaxDuration)
	}
}
