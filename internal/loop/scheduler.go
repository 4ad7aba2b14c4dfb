package loop

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int           `json:"systemCount"`
	Frames      int64         `json:"frames"`
	FrameTime   time.Duration `json:"frameTime"`
	Systems     []SystemStats `json:"systems"`
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string        `json:"name"`
	ExecutionCount int64         `json:"executionCount"`
	MinDuration    time.Duration `json:"minDuration"`
	MaxDuration    time.Duration `json:"maxDuration"`
	AvgDuration    time.Duration `json:"avgDuration"`
	LastDuration   time.Duration `json:"lastDuration"`
	TotalDuration  time.Duration `json:"totalDuration"`
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in order, one frame at a time, on a single goroutine.
type Scheduler struct {
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands

	frames    int64
	lastFrame time.Time
	frameTime time.Duration
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register appends a system to the frame.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		return named.Name()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() == "" {
		return systemType.String()
	}
	return systemType.Name()
}

// Once executes every registered system for a frame stamped now, records the
// frame in the statistics and then flushes the deferred commands.
func (s *Scheduler) Once(now time.Time) {
	frame := &Frame{
		Now:      now,
		Index:    s.frames,
		Commands: s.commands,
	}
	if !s.lastFrame.IsZero() {
		frame.DeltaTime = now.Sub(s.lastFrame).Seconds()
	}
	s.lastFrame = now

	frameStart := time.Now()
	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.frameTime = time.Since(frameStart)
	s.frames++

	// Deferred commands observe the frame as counted.
	s.commands.Flush()
}

// Run executes frames at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		FrameTime:   s.frameTime,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
	}

	return stats
}
