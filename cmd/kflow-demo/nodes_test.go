package main

import (
	"context"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMixer(t *testing.T) {
	m := &Mixer{}
	v, err := m.Step(context.Background(), 0.5, -4)
	assert.NoError(t, err)
	assert.Equal(t, -2.0, v)
}

func TestGain(t *testing.T) {
	tests := []struct {
		name    string
		gain    Gain
		in      float64
		out     float64
		clipped int
	}{
		{name: "scale", gain: Gain{Factor: 2}, in: 0.25, out: 0.5},
		{name: "no limit", gain: Gain{Factor: 10}, in: 1, out: 10},
		{name: "clip high", gain: Gain{Factor: 2, Limit: 1}, in: 0.75, out: 1, clipped: 1},
		{name: "clip low", gain: Gain{Factor: 2, Limit: 1}, in: -0.75, out: -1, clipped: 1},
		{name: "at limit", gain: Gain{Factor: 1, Limit: 1}, in: 1, out: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.gain.Step(context.Background(), tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.out, v)
			assert.Equal(t, tt.clipped, tt.gain.Clipped())
		})
	}
}

func TestStats(t *testing.T) {
	s := &Stats{}
	assert.Equal(t, Summary{}, s.Summary())

	for _, v := range []float64{3, -4, 3, -4} {
		assert.NoError(t, s.Step(context.Background(), v))
	}
	got := s.Summary()
	assert.Equal(t, 4, got.Count)
	assert.Equal(t, -4.0, got.Min)
	assert.Equal(t, 3.0, got.Max)
	assert.Equal(t, -0.5, got.Mean)
	assert.Equal(t, math.Sqrt(12.5), got.RMS)
}

func TestPeak(t *testing.T) {
	assert.Equal(t, 0.0, peak(nil))
	assert.Equal(t, 5.0, peak([]float64{1, -5, 2}))
}
