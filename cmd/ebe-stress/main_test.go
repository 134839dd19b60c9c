package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClickerAlwaysPressesInside(t *testing.T) {
	c := &clicker{rng: rand.New(rand.NewPCG(1, 1))}
	for range 100 {
		p := c.Sample()
		require.True(t, p.Inside)
		assert.NotZero(t, p.JustPressed)
		assert.Less(t, p.X, float32(256))
		assert.Less(t, p.Y, float32(256))
	}
}

func TestRunSpawnsEveryFrame(t *testing.T) {
	report, err := run(context.Background(), options{
		duration:    50 * time.Millisecond,
		prepopulate: 100,
		seed:        5,
	}, zerolog.Nop())
	require.NoError(t, err)

	require.Positive(t, report.TotalUpdates)
	assert.Equal(t, uint64(report.TotalUpdates), report.Counters.Spawned)
	assert.GreaterOrEqual(t, report.PeakLive, 101)
	assert.Len(t, report.UpdateTime.Samples, int(report.TotalUpdates))
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Max)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "# Click Stress Test Report")
	assert.Contains(t, buf.String(), "SpawnSystem")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)
}
