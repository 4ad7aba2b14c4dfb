// Package game runs a tetris engine inside a frame loop and connects it to
// input producers and snapshot consumers living on other goroutines.
package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/input"
	"github.com/plus3/blockfall/internal/loop"
	"github.com/plus3/blockfall/tetris"
)

// Sink receives every new snapshot after the frame that produced it.
type Sink interface {
	Publish(s tetris.Snapshot)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(s tetris.Snapshot)

func (f SinkFunc) Publish(s tetris.Snapshot) {
	f(s)
}

// Session owns an engine and the scheduler that drives it. The engine is only
// touched from the goroutine calling Step or Run; other goroutines interact
// through Push and Snapshot.
type Session struct {
	engine    *tetris.Engine
	queue     *input.Queue
	scheduler *loop.Scheduler
	sinks     []Sink
	producers []loop.System
	logger    zerolog.Logger

	mu     sync.RWMutex
	latest tetris.Snapshot
	stats  *loop.SchedulerStats
}

type Option func(*Session)

// WithSink registers a snapshot consumer.
func WithSink(sink Sink) Option {
	return func(s *Session) {
		s.sinks = append(s.sinks, sink)
	}
}

// WithSystems registers systems that run before input is applied, typically
// to push actions onto the queue.
func WithSystems(systems ...loop.System) Option {
	return func(s *Session) {
		s.producers = append(s.producers, systems...)
	}
}

func WithQueue(q *input.Queue) Option {
	return func(s *Session) {
		s.queue = q
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(engine *tetris.Engine, opts ...Option) *Session {
	s := &Session{
		engine:    engine,
		scheduler: loop.NewScheduler(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.queue == nil {
		s.queue = input.NewQueue(input.DefaultQueueCapacity)
	}

	for _, system := range s.producers {
		s.scheduler.Register(system)
	}
	s.scheduler.Register(&InputSystem{Engine: engine, Queue: s.queue, Logger: s.logger})
	s.scheduler.Register(&GravitySystem{Engine: engine})
	s.scheduler.Register(&PublishSystem{session: s})

	s.latest = engine.Snapshot()
	s.stats = s.scheduler.Stats()
	return s
}

// NewEngine builds an engine using the configured randomizer and the global
// logger. Extra options are applied last.
func NewEngine(cfg config.Config, opts ...tetris.Option) *tetris.Engine {
	base := []tetris.Option{
		tetris.WithRandomizer(cfg.NewRandomizer()),
		tetris.WithLogger(log.Logger.With().Str("component", "engine").Logger()),
	}
	return tetris.New(append(base, opts...)...)
}

// Push queues an action for the next frame. Safe for concurrent use.
func (s *Session) Push(a input.Action) {
	s.queue.Push(a)
}

func (s *Session) Queue() *input.Queue {
	return s.queue
}

// Engine exposes the engine for code running on the loop goroutine.
func (s *Session) Engine() *tetris.Engine {
	return s.engine
}

// Step runs a single frame stamped now.
func (s *Session) Step(now time.Time) {
	s.scheduler.Once(now)
}

// Run steps the session every interval until ctx is cancelled.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	s.logger.Info().Dur("interval", interval).Msg("session started")
	s.scheduler.Run(ctx, interval)
	s.logger.Info().Msg("session stopped")
}

// Snapshot returns the latest published snapshot. Safe for concurrent use.
func (s *Session) Snapshot() tetris.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// SchedulerStats returns the frame statistics captured at the end of the
// last frame. Safe for concurrent use.
func (s *Session) SchedulerStats() *loop.SchedulerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
