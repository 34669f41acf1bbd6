package metrics

import (
	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/geom"
	"gonum.org/v1/gonum/floats"
)

// HandOffset is the displacement of the virtual hand from the real hand.
func HandOffset(f engine.Frame) float64 { return geom.Distance(f.VirtualHand, f.RealHand) }

func ElbowOffset(f engine.Frame) float64 { return geom.Distance(f.VirtualElbow, f.RealElbow) }

func HandProgress(f engine.Frame) float64 { return f.HandProgress }

func ElbowProgress(f engine.Frame) float64 { return f.ElbowProgress }

// PeakOffset is the largest value of its extractor over the run.
type PeakOffset struct {
	name    string
	extract func(engine.Frame) float64
	samples []float64
}

func NewPeakOffset(name string, extract func(engine.Frame) float64) *PeakOffset {
	return &PeakOffset{name: name, extract: extract}
}

func (p *PeakOffset) Name() string {
	return p.name
}

func (p *PeakOffset) Observe(f engine.Frame) {
	p.samples = append(p.samples, p.extract(f))
}

func (p *PeakOffset) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	return floats.Max(p.samples)
}

func (p *PeakOffset) Reset() {
	p.samples = p.samples[:0]
}
