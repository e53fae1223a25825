package main

import (
	"math"

	"github.com/birdayz/kflow/kgraph"
	"github.com/birdayz/kflow/knode"
)

// Pipeline is the demo graph:
//
//	left ──┐
//	       ├─> mixer -> gain ─┬─> stats
//	right ─┘                  └─> window -> peak -> peaks
type Pipeline struct {
	Topology *kgraph.Topology

	Gain  *Gain
	Stats *Stats
	Peaks *knode.Collector[float64]
}

func tone(hz, rate float64) func(i int) float64 {
	return func(i int) float64 {
		return math.Sin(2 * math.Pi * hz * float64(i) / rate)
	}
}

// NewPipeline builds the topology for cfg.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		Gain:  &Gain{Factor: cfg.Gain, Limit: cfg.Limit},
		Stats: &Stats{},
		Peaks: &knode.Collector[float64]{},
	}

	b := kgraph.NewBuilder()
	register := []error{
		knode.Register0x1(b, "left", knode.Generate(cfg.Samples, tone(cfg.LeftHz, cfg.SampleRate))),
		knode.Register0x1(b, "right", knode.Generate(cfg.Samples, tone(cfg.RightHz, cfg.SampleRate))),
		RegisterMixer(b, "mixer", &Mixer{}),
		RegisterGain(b, "gain", p.Gain),
		RegisterStats(b, "stats", p.Stats),
		knode.Register1x1(b, "window", knode.Aggregate[float64](cfg.Window)),
		knode.Register1x1(b, "peak", knode.Map(peak)),
		knode.Register1x0(b, "peaks", knode.Collect(p.Peaks)),
	}
	for _, err := range register {
		if err != nil {
			return nil, err
		}
	}

	c := cfg.Capacity
	connect := []error{
		b.Connect(kgraph.Out("left", 0), kgraph.InNamed("mixer", "Left"), c),
		b.Connect(kgraph.Out("right", 0), kgraph.InNamed("mixer", "Right"), c),
		b.Pipe("mixer", "gain", c),
		b.Pipe("gain", "stats", c),
		b.Pipe("gain", "window", c),
		b.Pipe("window", "peak", c),
		b.Pipe("peak", "peaks", c),
	}
	for _, err := range connect {
		if err != nil {
			return nil, err
		}
	}

	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	p.Topology = t
	return p, nil
}
