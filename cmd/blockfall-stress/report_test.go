package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:      time.Second,
		Sessions:      2,
		Bot:           "greedy",
		Randomizer:    "bag",
		TotalTime:     time.Second,
		SimulatedTime: 30 * time.Second,
	}
	r.addGame(1200)
	r.addGame(400)

	var sb strings.Builder
	require.NoError(t, r.Generate(&sb))

	out := sb.String()
	assert.Contains(t, out, "- **Games Played:** 2")
	assert.Contains(t, out, "- **Best Score:** 1200")
	assert.Contains(t, out, "(30x real time)")
	assert.NotContains(t, out, "GC Pause Durations")
}
