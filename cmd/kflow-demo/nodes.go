package main

import (
	"context"
	"math"

	"github.com/birdayz/kflow/kchan"
)

//go:generate go run ../kflowgen derive --type Mixer,Gain,Stats

// Mixer multiplies two signals sample by sample.
type Mixer struct {
	Left  *kchan.Receiver[float64]
	Right *kchan.Receiver[float64]
	Out   *kchan.Sender[float64]
}

func (m *Mixer) Step(_ context.Context, left, right float64) (float64, error) {
	return left * right, nil
}

// Gain scales a signal by Factor and clips it to [-Limit, Limit]. A Limit of
// zero disables clipping.
type Gain struct {
	In  *kchan.Receiver[float64]
	Out *kchan.Sender[float64]

	Factor float64
	Limit  float64

	clipped int
}

func (g *Gain) Step(_ context.Context, v float64) (float64, error) {
	v *= g.Factor
	if g.Limit <= 0 {
		return v, nil
	}
	switch {
	case v > g.Limit:
		g.clipped++
		return g.Limit, nil
	case v < -g.Limit:
		g.clipped++
		return -g.Limit, nil
	}
	return v, nil
}

// Clipped returns the number of clipped samples. Only valid after the node
// terminated.
func (g *Gain) Clipped() int {
	return g.clipped
}

// Summary describes a signal.
type Summary struct {
	Count int     `yaml:"count"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Mean  float64 `yaml:"mean"`
	RMS   float64 `yaml:"rms"`
}

// Stats accumulates a Summary of its input.
type Stats struct {
	In *kchan.Receiver[float64]

	count      int
	sum, sumSq float64
	min, max   float64
}

func (s *Stats) Step(_ context.Context, v float64) error {
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.count++
	s.sum += v
	s.sumSq += v * v
	return nil
}

// Summary returns the statistics so far. Only valid after the node
// terminated.
func (s *Stats) Summary() Summary {
	if s.count == 0 {
		return Summary{}
	}
	n := float64(s.count)
	return Summary{
		Count: s.count,
		Min:   s.min,
		Max:   s.max,
		Mean:  s.sum / n,
		RMS:   math.Sqrt(s.sumSq / n),
	}
}

// peak returns the largest absolute value of a window.
func peak(window []float64) float64 {
	var p float64
	for _, v := range window {
		p = math.Max(p, math.Abs(v))
	}
	return p
}
